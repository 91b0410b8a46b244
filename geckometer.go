package geckopush

import (
	"context"
	"fmt"
)

// GeckoMeter is a gauge widget showing one value between a min and a max.
// Each write replaces the previous one.
type GeckoMeter struct {
	base
	item     *float64
	minValue *float64
	maxValue *float64
}

// GeckoMeterData is the assembled data of a [GeckoMeter].
type GeckoMeterData struct {
	Item float64    `json:"item"`
	Min  MeterBound `json:"min"`
	Max  MeterBound `json:"max"`
}

// MeterBound wraps a gauge bound.
type MeterBound struct {
	Value float64 `json:"value"`
}

// GeckoMeterOption configures a [GeckoMeter] during construction.
type GeckoMeterOption func(*GeckoMeter) error

// WithMeterItem sets the displayed value.
func WithMeterItem(v float64) GeckoMeterOption {
	return func(m *GeckoMeter) error {
		m.item = Float(v)
		return nil
	}
}

// WithMeterRange sets the min and max bounds.
func WithMeterRange(minValue, maxValue float64) GeckoMeterOption {
	return func(m *GeckoMeter) error {
		m.minValue = Float(minValue)
		m.maxValue = Float(maxValue)
		return nil
	}
}

// NewGeckoMeter creates a [GeckoMeter] and registers it with d.
func NewGeckoMeter(d *Dashboard, widgetKey string, opts ...GeckoMeterOption) (*GeckoMeter, error) {
	b, err := newBase(d, widgetKey, KindGeckoMeter)
	if err != nil {
		return nil, err
	}

	m := &GeckoMeter{base: b}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	d.register(m)
	return m, nil
}

// AddData sets value, min and max together.
func (m *GeckoMeter) AddData(item, minValue, maxValue float64) {
	m.item = Float(item)
	m.minValue = Float(minValue)
	m.maxValue = Float(maxValue)
}

// AssembleData implements [Widget]. Value, min and max must all be set and
// finite.
func (m *GeckoMeter) AssembleData() (any, error) {
	var missing []string
	if m.item == nil {
		missing = append(missing, "item")
	}
	if m.minValue == nil {
		missing = append(missing, "min")
	}
	if m.maxValue == nil {
		missing = append(missing, "max")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, missing)
	}
	if err := checkFinite("geckometer value", *m.item, *m.minValue, *m.maxValue); err != nil {
		return nil, err
	}

	return GeckoMeterData{
		Item: *m.item,
		Min:  MeterBound{Value: *m.minValue},
		Max:  MeterBound{Value: *m.maxValue},
	}, nil
}

// Payload implements [Widget].
func (m *GeckoMeter) Payload() (Payload, error) {
	return m.payload(m.AssembleData)
}

// Push implements [Widget].
func (m *GeckoMeter) Push(ctx context.Context) (PushResult, error) {
	return m.push(ctx, m.AssembleData)
}
