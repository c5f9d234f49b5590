package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/crucial707/walti/internal/models"
	"github.com/robfig/cron/v3"
)

// Entry queues Plugin on Target whenever Spec (a cron expression) fires.
type Entry struct {
	Target string
	Plugin string
	Spec   string
}

func (e Entry) key() string { return e.Target + "/" + e.Plugin + "@" + e.Spec }

// LoadFunc returns the entries that should currently be scheduled.
type LoadFunc func(ctx context.Context) ([]Entry, error)

// QueueFunc queues one scan; walti.Client.QueueScan satisfies it.
type QueueFunc func(ctx context.Context, target, plugin string) (models.QueueResult, error)

// Scheduler keeps a cron table in sync with Load and calls Queue for each
// firing entry.
type Scheduler struct {
	Load     LoadFunc
	Queue    QueueFunc
	Interval time.Duration // how often Load is re-run; default 60s
	Logger   *slog.Logger

	mu         sync.Mutex
	cron       *cron.Cron
	entryByKey map[string]cron.EntryID
}

// SpecFor maps a plugin schedule to a cron expression. ok is false for
// ScheduleOff.
func SpecFor(s models.Schedule) (spec string, ok bool) {
	switch s {
	case models.ScheduleDay:
		return "@daily", true
	case models.ScheduleWeek:
		return "@weekly", true
	case models.ScheduleMonth:
		return "@monthly", true
	default:
		return "", false
	}
}

// EntriesFromTarget schedules every plugin of t on its own server-side
// schedule. Plugins that are off are skipped.
func EntriesFromTarget(t models.Target) []Entry {
	var entries []Entry
	for _, p := range t.Plugins {
		if spec, ok := SpecFor(p.Schedule); ok {
			entries = append(entries, Entry{Target: t.Name, Plugin: p.Name, Spec: spec})
		}
	}
	return entries
}

// Static returns a LoadFunc that always yields entries.
func Static(entries ...Entry) LoadFunc {
	return func(context.Context) ([]Entry, error) { return entries, nil }
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Scheduler) init() {
	if s.cron == nil {
		s.cron = cron.New()
		s.entryByKey = make(map[string]cron.EntryID)
	}
}

// Sync reloads the entries and rebuilds the cron table. Entries with an
// invalid spec are logged and skipped; duplicates are scheduled once. Jobs added here queue with ctx.
func (s *Scheduler) Sync(ctx context.Context) error {
	list, err := s.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	// Remove all current entries so the table reflects Load (and picks up edits)
	for _, id := range s.entryByKey {
		s.cron.Remove(id)
	}
	s.entryByKey = make(map[string]cron.EntryID)

	for _, e := range list {
		e := e
		if _, dup := s.entryByKey[e.key()]; dup {
			continue
		}
		id, err := s.cron.AddFunc(e.Spec, func() { s.run(ctx, e) })
		if err != nil {
			s.logger().Warn("scheduler: invalid cron spec", "target", e.Target, "plugin", e.Plugin, "spec", e.Spec, "error", err)
			continue
		}
		s.entryByKey[e.key()] = id
		s.logger().Info("scheduler: added entry", "target", e.Target, "plugin", e.Plugin, "spec", e.Spec)
	}
	return nil
}

// Len returns the number of scheduled entries.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entryByKey)
}

func (s *Scheduler) run(ctx context.Context, e Entry) {
	res, err := s.Queue(ctx, e.Target, e.Plugin)
	if err != nil {
		s.logger().Error("scheduler: queue scan", "target", e.Target, "plugin", e.Plugin, "error", err)
		return
	}
	s.logger().Info("scheduler: queued scan", "target", e.Target, "plugin", e.Plugin, "result", res.String())
}

// Run loads the entries, starts the cron and reloads every Interval until
// ctx is done. It fails only if the first load fails.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.cron.Start()
	s.mu.Unlock()

	interval := s.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stopped := s.cron.Stop()
			<-stopped.Done()
			return nil
		case <-ticker.C:
			if err := s.Sync(ctx); err != nil {
				s.logger().Error("scheduler: reload entries", "error", err)
			}
		}
	}
}
