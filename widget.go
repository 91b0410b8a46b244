package geckopush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Widget is a single panel on a dashboard that data can be pushed to.
//
// The set of widgets is closed: [BarChart], [BulletGraph], [Funnel],
// [GeckoMeter], [HighCharts], [Leaderboard], [LineChart] and [List]. Each is
// created with its New function, which registers it with a [Dashboard].
type Widget interface {
	// Key returns the widget key naming the push endpoint.
	Key() string

	// Kind returns the widget type.
	Kind() Kind

	// APIKey returns the API key copied from the dashboard at construction.
	APIKey() string

	// AssembleData validates the current field state and builds the
	// "data" value of the payload. It has no side effects.
	AssembleData() (any, error)

	// Payload assembles the full {api_key, data} envelope without sending it.
	Payload() (Payload, error)

	// Push assembles the payload and sends it in a single POST request.
	Push(ctx context.Context) (PushResult, error)

	widget()
}

// Payload is the envelope sent on every push.
type Payload struct {
	APIKey string `json:"api_key"`
	Data   any    `json:"data"`
}

// base carries what every widget shares. It is embedded by each widget type.
type base struct {
	dashboard *Dashboard
	apiKey    string
	key       string
	kind      Kind
}

// newBase validates the common constructor arguments.
func newBase(d *Dashboard, key string, kind Kind) (base, error) {
	if d == nil {
		return base{}, fmt.Errorf("%s: dashboard cannot be nil", kind)
	}
	if key == "" {
		return base{}, fmt.Errorf("%s: widget key cannot be empty", kind)
	}
	return base{
		dashboard: d,
		apiKey:    d.apiKey,
		key:       key,
		kind:      kind,
	}, nil
}

// Key returns the widget key.
func (b *base) Key() string { return b.key }

// Kind returns the widget type.
func (b *base) Kind() Kind { return b.kind }

// APIKey returns the API key the widget pushes with.
func (b *base) APIKey() string { return b.apiKey }

func (b *base) widget() {}

// payload wraps freshly assembled data in an envelope.
func (b *base) payload(assemble func() (any, error)) (Payload, error) {
	data, err := assemble()
	if err != nil {
		return Payload{}, err
	}
	return Payload{APIKey: b.apiKey, Data: data}, nil
}

// endpoint returns the URL the widget is pushed to.
func (b *base) endpoint() string {
	return b.dashboard.baseURL + url.PathEscape(b.key)
}

// push assembles, sends and reports one push. Every attempt, including one
// that fails validation, is observed by the dashboard.
func (b *base) push(ctx context.Context, assemble func() (any, error)) (PushResult, error) {
	result := PushResult{
		WidgetKey: b.key,
		Kind:      b.kind,
		ID:        uuid.NewString(),
	}

	finish := func(err error) (PushResult, error) {
		result.PushedAt = time.Now()
		result.Err = err
		result.Success = err == nil
		b.dashboard.observe(result)
		return result, err
	}

	payload, err := b.payload(assemble)
	if err != nil {
		return finish(fmt.Errorf("%s %s: %w", b.kind, b.key, err))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return finish(fmt.Errorf("%s %s: encode payload: %w: %w", b.kind, b.key, ErrInvalidType, err))
	}

	resp := b.dashboard.client.PostJSON(ctx, b.endpoint(), body, nil, b.dashboard.timeout)
	result.StatusCode = resp.StatusCode
	result.Latency = resp.Latency

	if resp.Error != nil {
		return finish(&PushError{WidgetKey: b.key, Err: resp.Error})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return finish(&PushError{
			WidgetKey:  b.key,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		})
	}

	reply, err := parseResponse(resp.Body)
	if err != nil {
		return finish(&PushError{
			WidgetKey:  b.key,
			StatusCode: resp.StatusCode,
			Message:    "unreadable response",
			Err:        err,
		})
	}
	if !reply.success {
		msg := reply.message
		if msg == "" {
			msg = "service reported failure"
		}
		return finish(&PushError{
			WidgetKey:  b.key,
			StatusCode: resp.StatusCode,
			Message:    msg,
		})
	}

	return finish(nil)
}

// IsValidationError reports whether err is one of the validation errors
// returned before any request is made.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrMissingData,
		ErrTooManyItems,
		ErrPartialBundle,
		ErrMixedShapes,
		ErrDuplicateLabels,
		ErrAlreadyInitialized,
		ErrInvalidType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// String returns a pointer to s, for optional string fields.
func String(s string) *string { return &s }

// checkFinite rejects NaN and infinite values, which JSON cannot encode.
func checkFinite(what string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidType, what, v)
		}
	}
	return nil
}

// checkFinitePtrs is checkFinite for optional values. Nil entries are skipped.
func checkFinitePtrs(what string, ps ...*float64) error {
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := checkFinite(what, *p); err != nil {
			return err
		}
	}
	return nil
}

// checkPointX accepts strings and finite numbers as x values.
func checkPointX(x any) error {
	switch v := x.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		return checkFinite("x value", float64(v))
	case float64:
		return checkFinite("x value", v)
	default:
		return fmt.Errorf("%w: x value must be a string or a number, got %T", ErrInvalidType, x)
	}
}

func copyFloats(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return append([]float64(nil), s...)
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func copyFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
