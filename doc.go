// Package geckopush pushes widget data to the Geckoboard push API.
//
// A [Dashboard] holds the account API key. Widgets are created against a
// dashboard, which registers them, then filled with data and pushed. Each
// push validates the widget's current state, assembles the JSON document the
// service expects and sends it in a single POST request.
//
// # Quick Start
//
//	d, err := geckopush.NewDashboard(os.Getenv("GECKOBOARD_API_KEY"))
//	if err != nil {
//	    return err
//	}
//
//	funnel, err := geckopush.NewFunnel(d, "123-abc",
//	    geckopush.WithFunnelStep(500, "Visitors"),
//	    geckopush.WithFunnelStep(120, "Sign ups"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	if _, err := funnel.Push(ctx); err != nil {
//	    slog.Error("push failed", "error", err)
//	}
//
// # Widgets
//
//   - [BarChart]: series of values with axis metadata
//   - [BulletGraph]: up to 4 multiples of ranges, measures and a comparative
//   - [Funnel]: up to 8 value/label steps
//   - [GeckoMeter]: a single value between min and max
//   - [HighCharts]: an opaque Highcharts definition, set once
//   - [Leaderboard]: up to 22 ranked entries
//   - [LineChart]: series of values or [x, y] points with axis metadata
//   - [List]: rows of title, optional label and description
//
// # Errors
//
// Validation problems are returned before any request is made and match one
// of the sentinel errors ([ErrMissingData], [ErrTooManyItems],
// [ErrPartialBundle], [ErrMixedShapes], [ErrDuplicateLabels],
// [ErrAlreadyInitialized]) via [errors.Is]. Transport failures, non-2xx
// replies and replies without "success": true are reported as a
// [*PushError]. [Dashboard.PushAll] keeps going when a widget fails and
// returns one [PushResult] per widget.
//
// # Architecture
//
// Internal packages (under internal/):
//
//   - internal/transport: HTTP client used for pushes
//   - internal/dispatch: bounded worker pool behind PushAll
//   - internal/store: latest push outcome per widget
//   - internal/pushtest: fake push API receiver for tests and examples
//
// The config package loads a dashboard definition from YAML and
// cmd/geckopush wraps it in a command line tool.
package geckopush
