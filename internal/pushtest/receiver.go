package pushtest

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// SendPath is the path prefix the receiver serves.
const SendPath = "/v1/send/"

const maxRequestBodySize = 1 << 20 // 1MB

// Push is one envelope accepted by a [Receiver].
type Push struct {
	WidgetKey  string
	APIKey     string
	Data       json.RawMessage
	ReceivedAt time.Time
}

type failure struct {
	status  int
	message string
}

// Receiver is an http.Handler imitating the push API.
type Receiver struct {
	apiKey string
	logger *slog.Logger

	mu       sync.Mutex
	pushes   []Push
	failures map[string]failure
}

// Option configures a [Receiver].
type Option func(*Receiver)

// WithAPIKey makes the receiver reject envelopes carrying any other key.
func WithAPIKey(key string) Option {
	return func(r *Receiver) {
		r.apiKey = key
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Receiver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReceiver creates a [Receiver]. Without [WithAPIKey] any key is accepted.
func NewReceiver(opts ...Option) *Receiver {
	r := &Receiver{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		failures: make(map[string]failure),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestServer starts an httptest server backed by a new Receiver and
// returns it along with the base URL to hand to geckopush.WithBaseURL.
// The server is closed when the test finishes.
func NewTestServer(tb testing.TB, opts ...Option) (*Receiver, string) {
	tb.Helper()

	rcv := NewReceiver(opts...)
	srv := httptest.NewServer(rcv)
	tb.Cleanup(srv.Close)

	return rcv, srv.URL + SendPath
}

// Fail makes pushes to widgetKey answer with status and an error message.
// A status of 200 answers {"success": false} with a 200 code, as the real
// service does for some payload errors.
func (r *Receiver) Fail(widgetKey string, status int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[widgetKey] = failure{status: status, message: message}
}

// Pushes returns a copy of every accepted envelope in arrival order.
func (r *Receiver) Pushes() []Push {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]Push, len(r.pushes))
	copy(cp, r.pushes)
	return cp
}

// PushesFor returns the accepted envelopes for one widget key.
func (r *Receiver) PushesFor(widgetKey string) []Push {
	var out []Push
	for _, p := range r.Pushes() {
		if p.WidgetKey == widgetKey {
			out = append(out, p)
		}
	}
	return out
}

// ServeHTTP implements http.Handler.
func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !strings.HasPrefix(req.URL.Path, SendPath) {
		http.NotFound(w, req)
		return
	}
	widgetKey := strings.TrimPrefix(req.URL.Path, SendPath)
	if widgetKey == "" || strings.Contains(widgetKey, "/") {
		writeResult(w, http.StatusNotFound, "Widget not found")
		return
	}

	if req.Method != http.MethodPost {
		writeResult(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeResult(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var envelope struct {
		APIKey string          `json:"api_key"`
		Data   json.RawMessage `json:"data"`
	}
	dec := json.NewDecoder(io.LimitReader(req.Body, maxRequestBodySize))
	if err := dec.Decode(&envelope); err != nil {
		writeResult(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if envelope.APIKey == "" || (r.apiKey != "" && envelope.APIKey != r.apiKey) {
		writeResult(w, http.StatusUnauthorized, "Your API key is invalid")
		return
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		writeResult(w, http.StatusBadRequest, "Missing data")
		return
	}

	r.mu.Lock()
	f, failing := r.failures[widgetKey]
	if !failing {
		r.pushes = append(r.pushes, Push{
			WidgetKey:  widgetKey,
			APIKey:     envelope.APIKey,
			Data:       envelope.Data,
			ReceivedAt: time.Now(),
		})
	}
	r.mu.Unlock()

	if failing {
		r.logger.Info("push rejected", "widget", widgetKey, "status", f.status)
		writeResult(w, f.status, f.message)
		return
	}

	r.logger.Info("push received", "widget", widgetKey, "bytes", len(envelope.Data))
	writeResult(w, http.StatusOK, "")
}

// writeResult writes a push API style response. An empty message on a 200
// means success.
func writeResult(w http.ResponseWriter, status int, message string) {
	body := map[string]any{"success": message == "" && status == http.StatusOK}
	if message != "" {
		body["error"] = message
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
