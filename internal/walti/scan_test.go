package walti

import (
	"context"
	"net/http"
	"testing"

	"github.com/crucial707/walti/internal/models"
	"github.com/crucial707/walti/internal/waltitest"
)

func TestQueueScan_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		want    models.QueueResult
		wantErr bool
	}{
		{http.StatusCreated, models.QueueSuccess, false},
		{http.StatusPaymentRequired, models.QueueSkipped, false},
		{http.StatusOK, models.QueueUndefined, true},
		{http.StatusNotFound, models.QueueUndefined, true},
		{http.StatusInternalServerError, models.QueueUndefined, true},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var method, path string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				method, path = r.Method, r.URL.Path
				w.WriteHeader(tt.status)
			})

			got, err := c.QueueScan(context.Background(), "site1", "xss")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("result = %v, want %v", got, tt.want)
			}
			if method != http.MethodPost || path != "/v1/targets/site1/plugins/xss/scans" {
				t.Errorf("request = %s %s", method, path)
			}
		})
	}
}

func TestQueueScan_Fake(t *testing.T) {
	fake, c := startFake(t)
	fake.AddTarget(waltitest.TargetJSON("site1", waltitest.PluginJSON("xss", "day"), waltitest.PluginJSON("nmap", "off")))
	fake.SetQueueStatus("site1", "nmap", http.StatusPaymentRequired)

	res, err := c.QueueScan(context.Background(), "site1", "xss")
	if err != nil || res != models.QueueSuccess {
		t.Fatalf("queue xss = %v, %v", res, err)
	}
	res, err = c.QueueScan(context.Background(), "site1", "nmap")
	if err != nil || res != models.QueueSkipped {
		t.Fatalf("queue nmap = %v, %v", res, err)
	}
	if _, err := c.QueueScan(context.Background(), "missing", "xss"); err == nil {
		t.Fatal("expected error for unknown target")
	}

	queued := fake.Queued()
	if len(queued) != 1 || queued[0] != (waltitest.QueuedScan{Target: "site1", Plugin: "xss"}) {
		t.Errorf("queued = %+v", queued)
	}
	if h := fake.LastHeaders(); h.Get("Content-Type") != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", h.Get("Content-Type"))
	}
}
