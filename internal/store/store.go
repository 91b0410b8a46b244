package store

import "time"

// PushRecord is the stored outcome of a single widget push.
//
// PushRecord flattens the error to a string so records can be serialized,
// and is decoupled from the public geckopush.PushResult type.
type PushRecord struct {
	// WidgetKey identifies the widget that was pushed.
	WidgetKey string `json:"widget_key"`

	// Kind is the widget type, e.g. "funnel".
	Kind string `json:"kind"`

	// PushID is the unique identifier of this push attempt.
	PushID string `json:"push_id"`

	// Success reports whether the service accepted the payload.
	Success bool `json:"success"`

	// StatusCode is the HTTP status code, zero if no response was received.
	StatusCode int `json:"status_code"`

	// LatencyMs is the request latency in milliseconds.
	LatencyMs int64 `json:"latency_ms"`

	// PushedAt is when the push completed.
	PushedAt time.Time `json:"pushed_at"`

	// Error holds the failure message. nil on success.
	Error *string `json:"error"`
}

// Store records push outcomes keyed by widget key.
//
// Implementations must be safe for concurrent access.
type Store interface {
	// Record stores a push outcome, replacing any earlier one for the key.
	Record(rec PushRecord)

	// Get returns the latest outcome for a widget key.
	Get(widgetKey string) (PushRecord, bool)

	// All returns the latest outcome per widget, ordered by the first time
	// each widget was recorded.
	All() []PushRecord
}
