package walti

import (
	"context"
	"net/http"
	"net/url"

	"github.com/crucial707/walti/internal/apierr"
	"github.com/crucial707/walti/internal/metrics"
	"github.com/crucial707/walti/internal/models"
)

// QueueScan asks the service to run pluginName against targetName.
// 201 means queued, 402 means the plan skipped it; anything else fails.
func (c *Client) QueueScan(ctx context.Context, targetName, pluginName string) (models.QueueResult, error) {
	path := "/v1/targets/" + url.PathEscape(targetName) + "/plugins/" + url.PathEscape(pluginName) + "/scans"
	resp, err := c.Post(ctx, path)
	if err != nil {
		metrics.IncScansQueued("error")
		return models.QueueUndefined, err
	}
	closeQuietly(resp.Body)

	switch resp.StatusCode {
	case http.StatusCreated:
		metrics.IncScansQueued(models.QueueSuccess.String())
		return models.QueueSuccess, nil
	case http.StatusPaymentRequired:
		metrics.IncScansQueued(models.QueueSkipped.String())
		c.logger.Info("scan skipped by plan", "target", targetName, "plugin", pluginName)
		return models.QueueSkipped, nil
	default:
		metrics.IncScansQueued("error")
		return models.QueueUndefined, apierr.Errorf("unexpected status %d queueing %s on %s", resp.StatusCode, pluginName, targetName)
	}
}
