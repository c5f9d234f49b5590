package models

import (
	"time"

	"github.com/crucial707/walti/internal/apierr"
)

// Offsets come both as +09:00 and +0900; fractional seconds are optional.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
}

// ParseTimestamp parses a service timestamp such as
// 2015-04-01T12:34:56.789+09:00 or 2015-04-01T12:34:56.789+0900.
func ParseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, apierr.Wrap(firstErr, "parse timestamp "+s)
}
