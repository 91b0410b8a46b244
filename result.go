package geckopush

import "time"

// Kind identifies a widget type.
//
// The values double as the "type" names used in configuration files.
type Kind string

const (
	KindBarChart    Kind = "bar_chart"
	KindBulletGraph Kind = "bullet_graph"
	KindFunnel      Kind = "funnel"
	KindGeckoMeter  Kind = "geckometer"
	KindHighCharts  Kind = "highcharts"
	KindLeaderboard Kind = "leaderboard"
	KindLineChart   Kind = "line_chart"
	KindList        Kind = "list"
)

// Kinds returns every widget kind in a fixed order.
func Kinds() []Kind {
	return []Kind{
		KindBarChart,
		KindBulletGraph,
		KindFunnel,
		KindGeckoMeter,
		KindHighCharts,
		KindLeaderboard,
		KindLineChart,
		KindList,
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// PushResult holds the outcome of pushing a single widget.
type PushResult struct {
	// WidgetKey is the key of the pushed widget.
	WidgetKey string

	// Kind is the widget's type.
	Kind Kind

	// ID uniquely identifies this push attempt in logs.
	ID string

	// Success is true when the service accepted the payload.
	Success bool

	// StatusCode is the HTTP status code. Zero if the push failed before a
	// response was received, including validation failures.
	StatusCode int

	// Latency is the time taken by the HTTP request.
	Latency time.Duration

	// PushedAt is when the push finished.
	PushedAt time.Time

	// Err is the validation error or *PushError that made the push fail.
	// nil when Success is true.
	Err error
}
