package waltitest

import "fmt"

// TargetJSON renders a well-formed target object with the given plugin
// objects.
func TargetJSON(name string, plugins ...string) string {
	list := ""
	for i, p := range plugins {
		if i > 0 {
			list += ","
		}
		list += p
	}
	return fmt.Sprintf(`{
	"status": "active",
	"name": %q,
	"description": "fixture target",
	"label": "fixture",
	"ownership_url": "https://%s/walti.txt",
	"ownership": "confirmed",
	"created_at": "2015-03-01T00:00:00.000+09:00",
	"updated_at": "2015-03-02T00:00:00.000+0900",
	"plugins": [%s]
}`, name, name, list)
}

// PluginJSON renders an unqueued plugin object that was never scanned.
func PluginJSON(name, schedule string) string {
	return fmt.Sprintf(`{"name": %q, "schedule": %q, "queued": false}`, name, schedule)
}

// ScannedPluginJSON renders a plugin whose last scan has the given id,
// color and result status.
func ScannedPluginJSON(name, schedule string, scanID int, color string, resultStatus int) string {
	return fmt.Sprintf(`{
	"name": %q,
	"schedule": %q,
	"queued": false,
	"scan": {
		"id": %d,
		"message": "scan finished",
		"status": "done",
		"status_color": %q,
		"result_status": %d,
		"created_at": "2015-04-01T12:34:56.789+09:00",
		"updated_at": "2015-04-01T12:40:00.000+09:00"
	}
}`, name, schedule, scanID, color, resultStatus)
}

// QueuedPluginJSON renders a plugin currently waiting in the queue.
func QueuedPluginJSON(name, schedule string) string {
	return fmt.Sprintf(`{"name": %q, "schedule": %q, "queued": true, "queued_at": "2015-04-02T09:00:00.000+09:00"}`, name, schedule)
}
