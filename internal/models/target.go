package models

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/walti/internal/apierr"
)

// Target is a snapshot of a monitored site as the service reported it.
type Target struct {
	Status       TargetStatus `json:"status"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Label        string       `json:"label"`
	OwnershipURL *url.URL     `json:"-"`
	Ownership    Ownership    `json:"ownership"`
	Plugins      []Plugin     `json:"plugins"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type targetJSON struct {
	Status       *string           `json:"status" validate:"required"`
	Name         *string           `json:"name" validate:"required,min=1"`
	Description  *string           `json:"description" validate:"required"`
	Label        *string           `json:"label" validate:"required"`
	OwnershipURL *string           `json:"ownership_url" validate:"required,url"`
	Ownership    *string           `json:"ownership" validate:"required"`
	CreatedAt    *string           `json:"created_at" validate:"required"`
	UpdatedAt    *string           `json:"updated_at" validate:"required"`
	Plugins      []json.RawMessage `json:"plugins" validate:"required"`
}

// DecodeTarget builds a Target, with its plugins in server order, from
// a JSON object.
func DecodeTarget(data []byte) (Target, error) {
	var in targetJSON
	if err := unmarshalStrict(data, &in, "target"); err != nil {
		return Target{}, err
	}

	t := Target{
		Name:        *in.Name,
		Description: *in.Description,
		Label:       *in.Label,
		Plugins:     make([]Plugin, 0, len(in.Plugins)),
	}
	wrap := func(err error) error { return apierr.Wrap(err, "decode target "+t.Name) }

	var err error
	if t.Status, err = ParseTargetStatus(*in.Status); err != nil {
		return Target{}, wrap(err)
	}
	if t.Ownership, err = ParseOwnership(*in.Ownership); err != nil {
		return Target{}, wrap(err)
	}
	if t.OwnershipURL, err = url.Parse(*in.OwnershipURL); err != nil {
		return Target{}, wrap(err)
	}
	if t.CreatedAt, err = ParseTimestamp(*in.CreatedAt); err != nil {
		return Target{}, wrap(err)
	}
	if t.UpdatedAt, err = ParseTimestamp(*in.UpdatedAt); err != nil {
		return Target{}, wrap(err)
	}

	for _, raw := range in.Plugins {
		p, err := DecodePlugin(raw)
		if err != nil {
			return Target{}, wrap(err)
		}
		t.Plugins = append(t.Plugins, p)
	}
	return t, nil
}

// DecodeTargets decodes a JSON array of targets. One bad element fails
// the whole array.
func DecodeTargets(data []byte) ([]Target, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, apierr.Wrap(err, "decode target list")
	}
	targets := make([]Target, 0, len(raws))
	for i, raw := range raws {
		t, err := DecodeTarget(raw)
		if err != nil {
			return nil, apierr.Wrap(err, "decode target list element "+strconv.Itoa(i))
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// MarshalJSON renders OwnershipURL as a plain string.
func (t Target) MarshalJSON() ([]byte, error) {
	type plain Target
	var ownershipURL string
	if t.OwnershipURL != nil {
		ownershipURL = t.OwnershipURL.String()
	}
	return json.Marshal(struct {
		plain
		OwnershipURL string `json:"ownership_url"`
	}{plain(t), ownershipURL})
}

// Plugin returns the plugin with the given name.
func (t Target) Plugin(name string) (Plugin, bool) {
	for _, p := range t.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// ResultURL composes the console page of the latest scan of pluginName:
// <consoleHost>/targets/<name>/plugins/<plugin>/logs/<scanID>.
func (t Target) ResultURL(consoleHost, pluginName string) (string, error) {
	p, ok := t.Plugin(pluginName)
	if !ok {
		return "", apierr.Errorf("target %s has no plugin %s", t.Name, pluginName)
	}
	if p.Scan == nil {
		return "", apierr.Errorf("plugin %s on target %s has never been scanned", pluginName, t.Name)
	}
	return strings.TrimRight(consoleHost, "/") +
		"/targets/" + url.PathEscape(t.Name) +
		"/plugins/" + url.PathEscape(pluginName) +
		"/logs/" + strconv.Itoa(p.Scan.ID), nil
}
