package models

import (
	"strings"

	"github.com/crucial707/walti/internal/apierr"
)

// TargetStatus is the monitoring state of a target.
type TargetStatus string

const (
	TargetActive    TargetStatus = "active"
	TargetUnchecked TargetStatus = "unchecked"
	TargetArchived  TargetStatus = "archived"
)

// Ownership is the verification state of a target.
type Ownership string

const (
	OwnershipUnknown   Ownership = "unknown"
	OwnershipQueued    Ownership = "queued"
	OwnershipConfirmed Ownership = "confirmed"
)

// Schedule is how often the service runs a plugin on its own.
type Schedule string

const (
	ScheduleDay   Schedule = "day"
	ScheduleWeek  Schedule = "week"
	ScheduleMonth Schedule = "month"
	ScheduleOff   Schedule = "off"
)

// StatusColor is the coarse severity of a scan result.
type StatusColor string

const (
	StatusGreen  StatusColor = "green"
	StatusOrange StatusColor = "orange"
	StatusRed    StatusColor = "red"
	StatusGrey   StatusColor = "grey"
)

// QueueResult is the outcome of asking the service to queue a scan.
type QueueResult int

const (
	QueueUndefined QueueResult = iota
	QueueSuccess
	QueueSkipped
)

func (r QueueResult) String() string {
	switch r {
	case QueueSuccess:
		return "success"
	case QueueSkipped:
		return "skipped"
	default:
		return "undefined"
	}
}

// parseEnum matches raw against allowed without regard to case.
func parseEnum[T ~string](field, raw string, allowed ...T) (T, error) {
	for _, v := range allowed {
		if strings.EqualFold(raw, string(v)) {
			return v, nil
		}
	}
	var zero T
	return zero, apierr.Errorf("unknown %s value %q", field, raw)
}

func ParseTargetStatus(s string) (TargetStatus, error) {
	return parseEnum("status", s, TargetActive, TargetUnchecked, TargetArchived)
}

func ParseOwnership(s string) (Ownership, error) {
	return parseEnum("ownership", s, OwnershipUnknown, OwnershipQueued, OwnershipConfirmed)
}

func ParseSchedule(s string) (Schedule, error) {
	return parseEnum("schedule", s, ScheduleDay, ScheduleWeek, ScheduleMonth, ScheduleOff)
}

func ParseStatusColor(s string) (StatusColor, error) {
	return parseEnum("status_color", s, StatusGreen, StatusOrange, StatusRed, StatusGrey)
}
