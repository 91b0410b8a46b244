package geckopush

import (
	"context"
	"fmt"
)

const maxFunnelSteps = 8

// FunnelStep is one step of a [Funnel].
type FunnelStep struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Funnel is a funnel widget with up to eight steps.
type Funnel struct {
	base
	steps      []FunnelStep
	funnelType string
	percentage string
}

// FunnelData is the assembled data of a [Funnel].
type FunnelData struct {
	Item       []FunnelStep `json:"item"`
	Type       string       `json:"type,omitempty"`
	Percentage string       `json:"percentage,omitempty"`
}

// FunnelOption configures a [Funnel] during construction.
type FunnelOption func(*Funnel) error

// WithFunnelStep adds a step, as [Funnel.AddData] does.
func WithFunnelStep(value float64, label string) FunnelOption {
	return func(f *Funnel) error {
		return f.AddData(value, label)
	}
}

// WithFunnelType sets the funnel type, e.g. "reverse".
func WithFunnelType(t string) FunnelOption {
	return func(f *Funnel) error {
		f.funnelType = t
		return nil
	}
}

// WithFunnelPercentage sets the percentage display, e.g. "hide".
func WithFunnelPercentage(p string) FunnelOption {
	return func(f *Funnel) error {
		f.percentage = p
		return nil
	}
}

// NewFunnel creates a [Funnel] and registers it with d.
//
// Example:
//
//	funnel, err := geckopush.NewFunnel(d, "123-abc",
//	    geckopush.WithFunnelStep(5, "Step1"),
//	)
func NewFunnel(d *Dashboard, widgetKey string, opts ...FunnelOption) (*Funnel, error) {
	b, err := newBase(d, widgetKey, KindFunnel)
	if err != nil {
		return nil, err
	}

	f := &Funnel{base: b}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	d.register(f)
	return f, nil
}

// AddData appends a step. Returns ErrTooManyItems once eight steps exist and
// ErrInvalidType for a NaN or infinite value.
func (f *Funnel) AddData(value float64, label string) error {
	if len(f.steps) >= maxFunnelSteps {
		return fmt.Errorf("%w: funnel widgets support a max of %d steps", ErrTooManyItems, maxFunnelSteps)
	}
	if err := checkFinite("funnel step value", value); err != nil {
		return err
	}
	f.steps = append(f.steps, FunnelStep{Value: value, Label: label})
	return nil
}

// Steps returns a copy of the steps added so far.
func (f *Funnel) Steps() []FunnelStep {
	return append([]FunnelStep(nil), f.steps...)
}

// AssembleData implements [Widget].
func (f *Funnel) AssembleData() (any, error) {
	if len(f.steps) == 0 {
		return nil, fmt.Errorf("%w: must add at least one step", ErrMissingData)
	}
	return FunnelData{
		Item:       f.Steps(),
		Type:       f.funnelType,
		Percentage: f.percentage,
	}, nil
}

// Payload implements [Widget].
func (f *Funnel) Payload() (Payload, error) {
	return f.payload(f.AssembleData)
}

// Push implements [Widget].
func (f *Funnel) Push(ctx context.Context) (PushResult, error) {
	return f.push(ctx, f.AssembleData)
}
