package walti

import (
	"context"
	"net/http"
	"net/url"

	"github.com/crucial707/walti/internal/apierr"
	"github.com/crucial707/walti/internal/models"
)

// FindTarget fetches one target by name. Any status but 200 is an error,
// whatever the body holds.
func (c *Client) FindTarget(ctx context.Context, name string) (models.Target, error) {
	resp, err := c.Get(ctx, "/v1/targets/"+url.PathEscape(name))
	if err != nil {
		return models.Target{}, err
	}
	if resp.StatusCode != http.StatusOK {
		closeQuietly(resp.Body)
		return models.Target{}, apierr.Errorf("unexpected status %d fetching target %s", resp.StatusCode, name)
	}

	body, err := readAll(resp.Body)
	if err != nil {
		return models.Target{}, err
	}
	return models.DecodeTarget(body)
}

// GetAllTargets fetches every target visible to the credentials, in
// server order.
func (c *Client) GetAllTargets(ctx context.Context) ([]models.Target, error) {
	resp, err := c.Get(ctx, "/v1/targets")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		closeQuietly(resp.Body)
		return nil, apierr.Errorf("unexpected status %d listing targets", resp.StatusCode)
	}

	body, err := readAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return models.DecodeTargets(body)
}

// ResultURL returns the console page of the latest pluginName scan on t.
// No request is made.
func (c *Client) ResultURL(t models.Target, pluginName string) (string, error) {
	return t.ResultURL(c.consoleHost, pluginName)
}
