package geckopush

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPush_SendsEnvelope(t *testing.T) {
	d, rcv := newTestDashboard(t)
	f, err := NewFunnel(d, "w1", WithFunnelStep(5, "Step1"))
	if err != nil {
		t.Fatalf("NewFunnel() error = %v", err)
	}

	result, err := f.Push(context.Background())
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	if !result.Success || result.StatusCode != http.StatusOK {
		t.Errorf("result = %+v, want success with 200", result)
	}
	if result.WidgetKey != "w1" || result.Kind != KindFunnel {
		t.Errorf("result attributed to %s/%s, want w1/funnel", result.WidgetKey, result.Kind)
	}
	if result.ID == "" {
		t.Error("result.ID is empty")
	}

	pushes := rcv.PushesFor("w1")
	if len(pushes) != 1 {
		t.Fatalf("receiver got %d pushes, want 1", len(pushes))
	}
	if pushes[0].APIKey != "test-key" {
		t.Errorf("api_key = %q, want test-key", pushes[0].APIKey)
	}
	want := decodeJSON(t, `{"item":[{"value":5,"label":"Step1"}]}`)
	if diff := cmp.Diff(want, decodeJSON(t, string(pushes[0].Data))); diff != "" {
		t.Errorf("pushed data mismatch (-want +got):\n%s", diff)
	}
}

func TestPush_EscapesWidgetKey(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	d, err := NewDashboard("k", WithBaseURL(srv.URL+"/v1/send"))
	if err != nil {
		t.Fatalf("NewDashboard() error = %v", err)
	}
	l, _ := NewList(d, "a/b c")

	if _, err := l.Push(context.Background()); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if gotPath != "/v1/send/a%2Fb%20c" {
		t.Errorf("request path = %q, want /v1/send/a%%2Fb%%20c", gotPath)
	}
}

func TestPush_ValidationErrorSendsNothing(t *testing.T) {
	d, rcv := newTestDashboard(t)
	f, _ := NewFunnel(d, "empty")

	result, err := f.Push(context.Background())
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("Push() error = %v, want ErrMissingData", err)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError() = false, want true")
	}
	var pushErr *PushError
	if errors.As(err, &pushErr) {
		t.Error("validation error should not be a *PushError")
	}
	if result.Success || result.StatusCode != 0 {
		t.Errorf("result = %+v, want unsent failure", result)
	}
	if n := len(rcv.Pushes()); n != 0 {
		t.Errorf("receiver got %d pushes, want 0", n)
	}
}

func TestPush_NonFiniteSendsNothing(t *testing.T) {
	d, rcv := newTestDashboard(t)
	m, _ := NewGeckoMeter(d, "meter")
	m.AddData(math.NaN(), 0, 100)

	_, err := m.Push(context.Background())
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("Push() error = %v, want ErrInvalidType", err)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError() = false, want true")
	}
	if n := len(rcv.Pushes()); n != 0 {
		t.Errorf("receiver got %d pushes, want 0", n)
	}
}

func TestPush_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		message    string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "non-2xx",
			status:     http.StatusNotFound,
			message:    "Widget not found",
			wantStatus: http.StatusNotFound,
			wantMsg:    "Widget not found",
		},
		{
			name:       "success false on 200",
			status:     http.StatusOK,
			message:    "Data is invalid",
			wantStatus: http.StatusOK,
			wantMsg:    "Data is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rcv := newTestDashboard(t)
			rcv.Fail("w1", tt.status, tt.message)
			f, _ := NewFunnel(d, "w1", WithFunnelStep(1, "a"))

			result, err := f.Push(context.Background())

			var pushErr *PushError
			if !errors.As(err, &pushErr) {
				t.Fatalf("Push() error = %v, want *PushError", err)
			}
			if pushErr.StatusCode != tt.wantStatus || pushErr.Message != tt.wantMsg {
				t.Errorf("PushError = %+v, want status %d message %q", pushErr, tt.wantStatus, tt.wantMsg)
			}
			if pushErr.WidgetKey != "w1" {
				t.Errorf("PushError.WidgetKey = %q, want w1", pushErr.WidgetKey)
			}
			if result.Success {
				t.Error("result.Success = true, want false")
			}
			if IsValidationError(err) {
				t.Error("IsValidationError() = true for a service error")
			}
		})
	}
}

func TestPush_WrongAPIKey(t *testing.T) {
	d, _ := newTestDashboard(t)
	other, err := NewDashboard("wrong-key", WithBaseURL(d.BaseURL()))
	if err != nil {
		t.Fatalf("NewDashboard() error = %v", err)
	}
	l, _ := NewList(other, "list")

	_, err = l.Push(context.Background())
	var pushErr *PushError
	if !errors.As(err, &pushErr) || pushErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Push() error = %v, want 401 *PushError", err)
	}
	if !strings.Contains(err.Error(), "Your API key is invalid") {
		t.Errorf("error %q does not carry the service message", err)
	}
}

func TestPush_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/v1/send/"
	srv.Close()

	d, err := NewDashboard("k", WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("NewDashboard() error = %v", err)
	}
	l, _ := NewList(d, "list")

	_, err = l.Push(context.Background())
	var pushErr *PushError
	if !errors.As(err, &pushErr) {
		t.Fatalf("Push() error = %v, want *PushError", err)
	}
	if pushErr.StatusCode != 0 || pushErr.Err == nil {
		t.Errorf("PushError = %+v, want no status and an underlying error", pushErr)
	}
}

func TestPush_ResponseBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "bool true", body: `{"success":true}`},
		{name: "string true", body: `{"success":"true"}`},
		{name: "numeric one", body: `{"success":1}`},
		{name: "bool false", body: `{"success":false}`, wantErr: true},
		{name: "not json", body: `OK`, wantErr: true},
		{name: "no success field", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			d, _ := NewDashboard("k", WithBaseURL(srv.URL))
			l, _ := NewList(d, "list")

			_, err := l.Push(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Push() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPush_ContextCancelled(t *testing.T) {
	d, rcv := newTestDashboard(t)
	l, _ := NewList(d, "list")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Push(ctx); err == nil {
		t.Fatal("Push() with cancelled context succeeded")
	}
	if n := len(rcv.Pushes()); n != 0 {
		t.Errorf("receiver got %d pushes, want 0", n)
	}
}

func TestAssembleData_Idempotent(t *testing.T) {
	d := offlineDashboard(t)
	bar, _ := NewBarChart(d, "bar", WithBarSeries(1, 2), WithBarAxes(WithXAxisLabels("a", "b")))
	bullet, _ := NewBulletGraph(d, "bullet", WithBullet(fullBullet("x")))
	funnel, _ := NewFunnel(d, "funnel", WithFunnelStep(1, "a"))
	meter, _ := NewGeckoMeter(d, "meter", WithMeterItem(1), WithMeterRange(0, 2))
	hc, _ := NewHighCharts(d, "hc", WithChart("{}"))
	lb, _ := NewLeaderboard(d, "lb", WithLeaderboardItem(LeaderboardItem{Label: "a", Value: Float(1)}))
	line, _ := NewLineChart(d, "line", WithLineSeries(LineSeries{Points: []Point{{X: 1, Y: 2}}}))
	list, _ := NewList(d, "list", WithListEntry(ListEntry{Text: "a", Name: "n"}))

	for _, w := range []Widget{bar, bullet, funnel, meter, hc, lb, line, list} {
		t.Run(w.Kind().String(), func(t *testing.T) {
			first, err := w.Payload()
			if err != nil {
				t.Fatalf("Payload() error = %v", err)
			}
			second, err := w.Payload()
			if err != nil {
				t.Fatalf("second Payload() error = %v", err)
			}
			if diff := cmp.Diff(roundTrip(t, first), roundTrip(t, second)); diff != "" {
				t.Errorf("repeated assembly differs (-first +second):\n%s", diff)
			}
			if first.APIKey != "test-key" {
				t.Errorf("Payload().APIKey = %q, want test-key", first.APIKey)
			}
		})
	}
}

func TestNewBase_Errors(t *testing.T) {
	if _, err := NewFunnel(nil, "w1"); err == nil {
		t.Error("NewFunnel(nil, ...) succeeded")
	}
	if _, err := NewFunnel(offlineDashboard(t), ""); err == nil {
		t.Error("NewFunnel(d, \"\") succeeded")
	}
}

func TestPush_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	d, rcv := newTestDashboard(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	rcv.Fail("w1", http.StatusBadRequest, "bad")
	l, _ := NewList(d, "w1")

	_, _ = l.Push(context.Background())

	out := buf.String()
	for _, want := range []string{"push failed", "widget=w1", "status_code=400"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
