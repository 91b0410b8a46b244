package geckopush

import (
	"errors"
	"fmt"
)

// Validation errors. They are returned, wrapped with detail, from AddData,
// Add and AssembleData, always before any network traffic. Use [errors.Is]
// to match them.
var (
	// ErrMissingData means a widget has no data, or a required field is unset.
	ErrMissingData = errors.New("widget missing required data")

	// ErrTooManyItems means a widget's arity limit was exceeded.
	ErrTooManyItems = errors.New("too many items")

	// ErrPartialBundle means a bullet graph multiple was only partly filled.
	ErrPartialBundle = errors.New("missing required data point(s)")

	// ErrMixedShapes means line chart series mix [x, y] pairs with flat values.
	ErrMixedShapes = errors.New("can not mix pairs and lists")

	// ErrDuplicateLabels means x values were given both per point and as
	// x-axis labels.
	ErrDuplicateLabels = errors.New("two x-axis labels provided")

	// ErrAlreadyInitialized means a once-only field was set a second time.
	ErrAlreadyInitialized = errors.New("widget data has already been initialized")

	// ErrInvalidType means a value had the wrong type, e.g. a non-string
	// chart definition in a config file.
	ErrInvalidType = errors.New("invalid type")
)

// PushError describes a push that reached the transport layer and failed:
// the connection failed, the service answered with a non-2xx status, or it
// answered without "success": true.
//
// Use [errors.As] to retrieve it from the error returned by Push.
type PushError struct {
	// WidgetKey is the key of the widget being pushed.
	WidgetKey string

	// StatusCode is the HTTP status code. Zero if no response was received.
	StatusCode int

	// Message is the service's error message, if it sent one.
	Message string

	// Err is the underlying transport or decoding error, if any.
	Err error
}

// Error implements the error interface.
func (e *PushError) Error() string {
	msg := fmt.Sprintf("push %s failed", e.WidgetKey)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *PushError) Unwrap() error {
	return e.Err
}
