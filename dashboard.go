package geckopush

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/geckopush/internal/dispatch"
	"github.com/jpalmerr/geckopush/internal/store"
	"github.com/jpalmerr/geckopush/internal/transport"
)

const (
	// DefaultBaseURL is the push API endpoint widget keys are appended to.
	DefaultBaseURL = "https://push.geckoboard.com/v1/send/"

	defaultTimeout        = 10 * time.Second
	defaultMaxConcurrency = 1
)

// Dashboard groups the widgets that share one API key.
//
// Widgets register themselves with the dashboard they are constructed
// against; [Dashboard.PushAll] then pushes all of them. A Dashboard is safe
// for concurrent use, the widgets it holds are not.
//
//	d, err := geckopush.NewDashboard(apiKey)
//	if err != nil {
//	    return err
//	}
//	funnel, err := geckopush.NewFunnel(d, "123-abc",
//	    geckopush.WithFunnelStep(5, "Step1"),
//	)
//	...
//	results, err := d.PushAll(ctx)
type Dashboard struct {
	apiKey         string
	baseURL        string
	timeout        time.Duration
	maxConcurrency int
	logger         *slog.Logger
	pushCallbacks  []func(PushResult)
	client         *transport.Client
	results        store.Store

	mu      sync.RWMutex
	widgets []Widget
}

// NewDashboard creates a [Dashboard] for apiKey.
//
// Defaults:
//   - Base URL: https://push.geckoboard.com/v1/send/
//   - Timeout: 10 seconds per push
//   - Max concurrency: 1 (PushAll is sequential)
//
// Returns an error if apiKey is empty or any option is invalid.
func NewDashboard(apiKey string, opts ...Option) (*Dashboard, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}

	cfg := &dashboardConfig{
		baseURL:        DefaultBaseURL,
		timeout:        defaultTimeout,
		maxConcurrency: defaultMaxConcurrency,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dashboard{
		apiKey:         apiKey,
		baseURL:        cfg.baseURL,
		timeout:        cfg.timeout,
		maxConcurrency: cfg.maxConcurrency,
		logger:         logger,
		pushCallbacks:  cfg.pushCallbacks,
		client:         transport.NewClient(),
		results:        store.NewMemoryStore(),
	}, nil
}

// APIKey returns the dashboard's API key.
func (d *Dashboard) APIKey() string {
	return d.apiKey
}

// BaseURL returns the push API base URL widgets are sent to.
func (d *Dashboard) BaseURL() string {
	return d.baseURL
}

// String returns a description with the API key redacted.
func (d *Dashboard) String() string {
	return fmt.Sprintf("<Dashboard api_key=%s widgets=%d>", RedactKey(d.apiKey), len(d.Widgets()))
}

// Widgets returns the registered widgets in registration order.
//
// The returned slice is a copy; the widgets themselves are shared.
func (d *Dashboard) Widgets() []Widget {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cp := make([]Widget, len(d.widgets))
	copy(cp, d.widgets)
	return cp
}

// Widget returns the first registered widget with the given key.
func (d *Dashboard) Widget(key string) (Widget, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, w := range d.widgets {
		if w.Key() == key {
			return w, true
		}
	}
	return nil, false
}

// register appends w. Called by every widget constructor.
func (d *Dashboard) register(w Widget) {
	d.mu.Lock()
	d.widgets = append(d.widgets, w)
	d.mu.Unlock()
}

// PushAll pushes every registered widget and returns one [PushResult] per
// widget, index aligned with [Dashboard.Widgets].
//
// A failing widget does not stop the others. The returned error joins every
// per-widget failure, each prefixed with its widget key, and is nil when all
// pushes succeeded. With [WithMaxConcurrency] above one the pushes run in
// parallel; the results keep their order.
func (d *Dashboard) PushAll(ctx context.Context) ([]PushResult, error) {
	widgets := d.Widgets()
	results := make([]PushResult, len(widgets))

	jobs := make([]dispatch.Job, len(widgets))
	for i, w := range widgets {
		jobs[i] = dispatch.Job{
			Name: w.Key(),
			Run: func(ctx context.Context) error {
				res, err := w.Push(ctx)
				results[i] = res
				return err
			},
		}
	}

	outcomes := dispatch.NewPool(d.maxConcurrency, d.logger).Run(ctx, jobs)

	var errs []error
	for i, out := range outcomes {
		if out.Err == nil {
			continue
		}
		if results[i].WidgetKey == "" {
			// the job never ran or panicked before Push returned
			results[i] = PushResult{
				WidgetKey: widgets[i].Key(),
				Kind:      widgets[i].Kind(),
				PushedAt:  time.Now(),
				Err:       out.Err,
			}
		}
		errs = append(errs, fmt.Errorf("%s: %w", widgets[i].Key(), out.Err))
	}

	if len(errs) > 0 {
		d.logger.Warn("push all completed with failures",
			"widgets", len(widgets),
			"failed", len(errs),
		)
	}

	return results, errors.Join(errs...)
}

// LastResults returns the latest push outcome of every widget pushed so far,
// in the order widgets were first pushed. Errors are flattened to their
// messages.
func (d *Dashboard) LastResults() []PushResult {
	records := d.results.All()
	results := make([]PushResult, len(records))
	for i, rec := range records {
		results[i] = fromRecord(rec)
	}
	return results
}

// LastResult returns the latest push outcome of the widget with the given
// key, and false if it has not been pushed yet.
func (d *Dashboard) LastResult(widgetKey string) (PushResult, bool) {
	rec, ok := d.results.Get(widgetKey)
	if !ok {
		return PushResult{}, false
	}
	return fromRecord(rec), true
}

// Close releases idle connections. The dashboard remains usable.
func (d *Dashboard) Close() {
	d.client.Close()
}

// observe logs a push outcome, records it and runs the push callbacks.
func (d *Dashboard) observe(result PushResult) {
	d.results.Record(toRecord(result))

	logAttrs := []any{
		"widget", result.WidgetKey,
		"kind", result.Kind,
		"push_id", result.ID,
		"status_code", result.StatusCode,
		"latency_ms", result.Latency.Milliseconds(),
	}
	if result.Err != nil {
		d.logger.Warn("push failed", append(logAttrs, "error", result.Err.Error())...)
	} else {
		d.logger.Debug("push completed", logAttrs...)
	}

	for _, cb := range d.pushCallbacks {
		invokeCallbackSafe(cb, result, d.logger)
	}
}

// toRecord converts a result to its storage form.
func toRecord(r PushResult) store.PushRecord {
	var errStr *string
	if r.Err != nil {
		s := r.Err.Error()
		errStr = &s
	}

	return store.PushRecord{
		WidgetKey:  r.WidgetKey,
		Kind:       r.Kind.String(),
		PushID:     r.ID,
		Success:    r.Success,
		StatusCode: r.StatusCode,
		LatencyMs:  r.Latency.Milliseconds(),
		PushedAt:   r.PushedAt,
		Error:      errStr,
	}
}

// fromRecord converts a stored record back to a result.
func fromRecord(rec store.PushRecord) PushResult {
	r := PushResult{
		WidgetKey:  rec.WidgetKey,
		Kind:       Kind(rec.Kind),
		ID:         rec.PushID,
		Success:    rec.Success,
		StatusCode: rec.StatusCode,
		Latency:    time.Duration(rec.LatencyMs) * time.Millisecond,
		PushedAt:   rec.PushedAt,
	}
	if rec.Error != nil {
		r.Err = errors.New(*rec.Error)
	}
	return r
}

// invokeCallbackSafe calls a push callback with panic recovery.
func invokeCallbackSafe(cb func(PushResult), result PushResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("push callback panicked",
				"panic", r,
				"widget", result.WidgetKey,
			)
		}
	}()
	cb(result)
}

// RedactKey masks all but the last four characters of an API key.
func RedactKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
