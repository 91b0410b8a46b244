package config

import (
	"encoding/json"
	"fmt"

	"github.com/jpalmerr/geckopush"
)

// BuildDashboard converts parsed configuration into a dashboard with every
// widget registered and populated, in file order.
//
// Dashboard settings from the file are applied first, so opts can override
// them (a logger, a push callback, a test base URL).
func BuildDashboard(cfg *Config, opts ...geckopush.Option) (*geckopush.Dashboard, error) {
	var dashOpts []geckopush.Option

	if cfg.BaseURL != "" {
		dashOpts = append(dashOpts, geckopush.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout != 0 {
		dashOpts = append(dashOpts, geckopush.WithTimeout(cfg.Timeout.Duration()))
	}
	if cfg.MaxConcurrency != 0 {
		dashOpts = append(dashOpts, geckopush.WithMaxConcurrency(cfg.MaxConcurrency))
	}
	dashOpts = append(dashOpts, opts...)

	d, err := geckopush.NewDashboard(cfg.APIKey, dashOpts...)
	if err != nil {
		return nil, err
	}

	for i, wc := range cfg.Widgets {
		if wc.Spec == nil {
			return nil, fmt.Errorf("widgets[%d] (%s): no %s settings", i, wc.Key, wc.Type)
		}
		if _, err := wc.Spec.build(d, wc.Key); err != nil {
			return nil, fmt.Errorf("widgets[%d] (%s): %w", i, wc.Key, err)
		}
	}

	return d, nil
}

// Validate builds the dashboard, assembles every widget and checks that the
// payload encodes, without sending anything. It returns the assembled envelopes keyed by widget, in file
// order, or the first error with its location.
func Validate(cfg *Config) ([]Envelope, error) {
	d, err := BuildDashboard(cfg)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	widgets := d.Widgets()
	envelopes := make([]Envelope, 0, len(widgets))
	for i, w := range widgets {
		payload, err := w.Payload()
		if err != nil {
			return nil, fmt.Errorf("widgets[%d] (%s): %w", i, w.Key(), err)
		}
		if _, err := json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("widgets[%d] (%s): encode payload: %w: %w", i, w.Key(), geckopush.ErrInvalidType, err)
		}
		envelopes = append(envelopes, Envelope{Key: w.Key(), Kind: w.Kind(), Payload: payload})
	}
	return envelopes, nil
}

// Envelope is an assembled but unsent push.
type Envelope struct {
	Key     string
	Kind    geckopush.Kind
	Payload geckopush.Payload
}
