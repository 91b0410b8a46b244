package geckopush

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// dashboardConfig holds mutable state during Dashboard construction.
type dashboardConfig struct {
	baseURL        string
	timeout        time.Duration
	maxConcurrency int
	logger         *slog.Logger
	pushCallbacks  []func(PushResult)
}

// Option is a function that configures a [Dashboard] during construction.
//
// Option implements the functional options pattern for [NewDashboard].
// Options return an error if validation fails.
type Option func(*dashboardConfig) error

// WithBaseURL overrides the push API base URL. The widget key is appended
// to it, so it should end with a slash; one is added if missing.
//
// Defaults to https://push.geckoboard.com/v1/send/. Mostly useful for tests
// and proxies.
//
// Returns an error if the URL has no http or https scheme, or carries a query
// or fragment.
func WithBaseURL(rawURL string) Option {
	return func(cfg *dashboardConfig) error {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return errors.New("invalid base URL: " + err.Error())
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return errors.New("base URL must have an http:// or https:// scheme")
		}
		if parsed.RawQuery != "" || parsed.ForceQuery || parsed.Fragment != "" {
			return errors.New("base URL cannot have a query or fragment")
		}
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		cfg.baseURL = rawURL
		return nil
	}
}

// WithTimeout sets the per-push HTTP timeout. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *dashboardConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithMaxConcurrency sets how many widgets [Dashboard.PushAll] pushes at
// once. The default of 1 pushes strictly one after another in registration
// order.
//
// Returns an error if the value is zero or negative.
func WithMaxConcurrency(n int) Option {
	return func(cfg *dashboardConfig) error {
		if n <= 0 {
			return errors.New("max concurrency must be positive")
		}
		cfg.maxConcurrency = n
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified, [slog.Default]
// is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	d, err := geckopush.NewDashboard(apiKey, geckopush.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *dashboardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithPushCallback registers a function called after every push attempt of
// any widget on the dashboard, including attempts that failed validation.
//
// Multiple callbacks run in registration order. With [WithMaxConcurrency]
// above one, callbacks may be invoked from several goroutines at once.
// Panics inside callbacks are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithPushCallback(cb func(PushResult)) Option {
	return func(cfg *dashboardConfig) error {
		if cb == nil {
			return nil
		}
		cfg.pushCallbacks = append(cfg.pushCallbacks, cb)
		return nil
	}
}
