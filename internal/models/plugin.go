package models

import (
	"encoding/json"
	"time"

	"github.com/crucial707/walti/internal/apierr"
)

// Plugin is a scan check available on a target.
type Plugin struct {
	Name     string     `json:"name"`
	Scan     *Scan      `json:"scan,omitempty"`
	Schedule Schedule   `json:"schedule"`
	Queued   bool       `json:"queued"`
	QueuedAt *time.Time `json:"queued_at,omitempty"` // set iff Queued
}

type pluginJSON struct {
	Name     *string         `json:"name" validate:"required"`
	Schedule *string         `json:"schedule" validate:"required"`
	Scan     json.RawMessage `json:"scan"`
	Queued   *bool           `json:"queued" validate:"required"`
	QueuedAt json.RawMessage `json:"queued_at"`
}

// DecodePlugin builds a Plugin from a JSON object. queued_at is only
// read, and then required, when queued is true.
func DecodePlugin(data []byte) (Plugin, error) {
	var in pluginJSON
	if err := unmarshalStrict(data, &in, "plugin"); err != nil {
		return Plugin{}, err
	}

	schedule, err := ParseSchedule(*in.Schedule)
	if err != nil {
		return Plugin{}, apierr.Wrap(err, "decode plugin "+*in.Name)
	}

	p := Plugin{
		Name:     *in.Name,
		Schedule: schedule,
		Queued:   *in.Queued,
	}

	if !isNull(in.Scan) {
		scan, err := DecodeScan(in.Scan)
		if err != nil {
			return Plugin{}, apierr.Wrap(err, "decode plugin "+p.Name)
		}
		p.Scan = &scan
	}

	if p.Queued {
		if isNull(in.QueuedAt) {
			return Plugin{}, apierr.Errorf("decode plugin %s: queued without queued_at", p.Name)
		}
		var raw string
		if err := json.Unmarshal(in.QueuedAt, &raw); err != nil {
			return Plugin{}, apierr.Wrap(err, "decode plugin "+p.Name+" queued_at")
		}
		at, err := ParseTimestamp(raw)
		if err != nil {
			return Plugin{}, apierr.Wrap(err, "decode plugin "+p.Name+" queued_at")
		}
		p.QueuedAt = &at
	}

	return p, nil
}
