package geckopush

import (
	"context"
	"fmt"
)

// HighCharts is a widget rendering a Highcharts chart definition.
//
// The definition is an opaque string (a Highcharts options object) and can
// be set only once.
type HighCharts struct {
	base
	chart string
}

// HighChartsData is the assembled data of a [HighCharts].
type HighChartsData struct {
	Highchart string `json:"highchart"`
}

// HighChartsOption configures a [HighCharts] during construction.
type HighChartsOption func(*HighCharts) error

// WithChart sets the chart definition, as [HighCharts.AddData] does.
func WithChart(chart string) HighChartsOption {
	return func(h *HighCharts) error {
		return h.AddData(chart)
	}
}

// NewHighCharts creates a [HighCharts] and registers it with d.
func NewHighCharts(d *Dashboard, widgetKey string, opts ...HighChartsOption) (*HighCharts, error) {
	b, err := newBase(d, widgetKey, KindHighCharts)
	if err != nil {
		return nil, err
	}

	h := &HighCharts{base: b}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	d.register(h)
	return h, nil
}

// AddData sets the chart definition. It returns ErrAlreadyInitialized if a
// definition was set before, and ErrMissingData for an empty string.
func (h *HighCharts) AddData(chart string) error {
	if h.chart != "" {
		return fmt.Errorf("%w: chart definition already assigned", ErrAlreadyInitialized)
	}
	if chart == "" {
		return fmt.Errorf("%w: empty chart definition", ErrMissingData)
	}
	h.chart = chart
	return nil
}

// AssembleData implements [Widget].
func (h *HighCharts) AssembleData() (any, error) {
	if h.chart == "" {
		return nil, ErrMissingData
	}
	return HighChartsData{Highchart: h.chart}, nil
}

// Payload implements [Widget].
func (h *HighCharts) Payload() (Payload, error) {
	return h.payload(h.AssembleData)
}

// Push implements [Widget].
func (h *HighCharts) Push(ctx context.Context) (PushResult, error) {
	return h.push(ctx, h.AssembleData)
}
