package scan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/crucial707/walti/cmd/walti/root"
	"github.com/crucial707/walti/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Queue scans on a recurring schedule",
		Long: `Run in the foreground and queue scans on a schedule until interrupted.

With --cron, every --plugin is queued on that cron expression.
Without it, each plugin of the target is queued on its own Walti schedule
(day, week or month; plugins that are off are skipped), re-read every --interval.

Examples:
  walti scan schedule --target example.com --plugin xss --cron "0 3 * * *"
  walti scan schedule --target example.com --metrics-addr :9102`,
		RunE: runSchedule,
	}

	cmd.Flags().StringP("target", "t", "", "Target name (required)")
	cmd.Flags().StringSliceP("plugin", "p", nil, "Plugin name, repeatable (required with --cron)")
	cmd.Flags().String("cron", "", "Cron expression, e.g. \"0 3 * * *\" or \"@daily\"")
	cmd.Flags().Duration("interval", time.Hour, "How often to re-read plugin schedules")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9102")
	cmd.MarkFlagRequired("target")
	return cmd
}

func runSchedule(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("target")
	plugins, _ := cmd.Flags().GetStringSlice("plugin")
	spec, _ := cmd.Flags().GetString("cron")
	interval, _ := cmd.Flags().GetDuration("interval")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	client, _, err := root.Client(cmd)
	if err != nil {
		return err
	}

	var load scheduler.LoadFunc
	if spec != "" {
		if len(plugins) == 0 {
			return errors.New("--plugin is required with --cron")
		}
		entries := make([]scheduler.Entry, 0, len(plugins))
		for _, p := range plugins {
			entries = append(entries, scheduler.Entry{Target: target, Plugin: p, Spec: spec})
		}
		load = scheduler.Static(entries...)
	} else {
		load = func(ctx context.Context) ([]scheduler.Entry, error) {
			t, err := client.FindTarget(ctx, target)
			if err != nil {
				return nil, err
			}
			return filterPlugins(scheduler.EntriesFromTarget(t), plugins), nil
		}
	}

	ctx := cmd.Context()
	if metricsAddr != "" {
		srv := metricsServer(metricsAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(cmd.ErrOrStderr(), "metrics server:", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	s := &scheduler.Scheduler{
		Load:     load,
		Queue:    client.QueueScan,
		Interval: interval,
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scheduling scans on %s. Press Ctrl+C to stop.\n", target)
	return s.Run(ctx)
}

// filterPlugins keeps entries for the named plugins; no names keeps all.
func filterPlugins(entries []scheduler.Entry, plugins []string) []scheduler.Entry {
	if len(plugins) == 0 {
		return entries
	}
	keep := make(map[string]bool, len(plugins))
	for _, p := range plugins {
		keep[p] = true
	}
	out := entries[:0]
	for _, e := range entries {
		if keep[e.Plugin] {
			out = append(out, e)
		}
	}
	return out
}

func metricsServer(addr string) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
}
