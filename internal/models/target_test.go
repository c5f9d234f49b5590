package models

import "testing"

func TestTarget_ResultURL(t *testing.T) {
	target := Target{
		Name: "site1",
		Plugins: []Plugin{
			{Name: "ssl"},
			{Name: "xss", Scan: &Scan{ID: 42}},
		},
	}

	got, err := target.ResultURL("https://console.walti.io", "xss")
	if err != nil {
		t.Fatalf("ResultURL: %v", err)
	}
	if want := "https://console.walti.io/targets/site1/plugins/xss/logs/42"; got != want {
		t.Errorf("ResultURL = %q, want %q", got, want)
	}

	if _, err := target.ResultURL("https://console.walti.io", "ssl"); err == nil {
		t.Error("expected error for a plugin that was never scanned")
	}
	if _, err := target.ResultURL("https://console.walti.io", "nikto"); err == nil {
		t.Error("expected error for an unknown plugin")
	}
}

func TestTarget_ResultURL_TrailingSlashHost(t *testing.T) {
	target := Target{Name: "site1", Plugins: []Plugin{{Name: "xss", Scan: &Scan{ID: 7}}}}
	got, err := target.ResultURL("http://localhost:9000/", "xss")
	if err != nil {
		t.Fatalf("ResultURL: %v", err)
	}
	if got != "http://localhost:9000/targets/site1/plugins/xss/logs/7" {
		t.Errorf("ResultURL = %q", got)
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseSchedule("MONTH"); err != nil || s != ScheduleMonth {
		t.Errorf("ParseSchedule(MONTH) = %q, %v", s, err)
	}
	if c, err := ParseStatusColor("Orange"); err != nil || c != StatusOrange {
		t.Errorf("ParseStatusColor(Orange) = %q, %v", c, err)
	}
	if o, err := ParseOwnership("queued"); err != nil || o != OwnershipQueued {
		t.Errorf("ParseOwnership(queued) = %q, %v", o, err)
	}
	if _, err := ParseStatusColor("purple"); err == nil {
		t.Error("expected error for unknown color")
	}
	if _, err := ParseSchedule(""); err == nil {
		t.Error("expected error for empty schedule")
	}
}

func TestQueueResult_String(t *testing.T) {
	if QueueSuccess.String() != "success" || QueueSkipped.String() != "skipped" || QueueUndefined.String() != "undefined" {
		t.Error("unexpected QueueResult strings")
	}
}
