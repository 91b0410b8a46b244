package geckopush

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jpalmerr/geckopush/internal/pushtest"
)

// newTestDashboard returns a dashboard pointed at a fresh fake receiver.
func newTestDashboard(t *testing.T, opts ...Option) (*Dashboard, *pushtest.Receiver) {
	t.Helper()

	rcv, baseURL := pushtest.NewTestServer(t, pushtest.WithAPIKey("test-key"))
	opts = append([]Option{
		WithBaseURL(baseURL),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	}, opts...)

	d, err := NewDashboard("test-key", opts...)
	if err != nil {
		t.Fatalf("NewDashboard() error = %v", err)
	}
	t.Cleanup(d.Close)
	return d, rcv
}

// offlineDashboard returns a dashboard for tests that never push.
func offlineDashboard(t *testing.T) *Dashboard {
	t.Helper()

	d, err := NewDashboard("test-key")
	if err != nil {
		t.Fatalf("NewDashboard() error = %v", err)
	}
	return d
}

// assembled returns the widget's data as generic JSON.
func assembled(t *testing.T, w Widget) any {
	t.Helper()

	data, err := w.AssembleData()
	if err != nil {
		t.Fatalf("AssembleData() error = %v", err)
	}
	return roundTrip(t, data)
}

// roundTrip marshals v and decodes it into generic JSON values.
func roundTrip(t *testing.T, v any) any {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return decodeJSON(t, string(b))
}

// decodeJSON decodes a JSON literal into generic values.
func decodeJSON(t *testing.T, s string) any {
	t.Helper()

	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v", s, err)
	}
	return out
}
