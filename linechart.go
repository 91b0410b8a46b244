package geckopush

import (
	"context"
	"encoding/json"
	"fmt"
)

// Point is an [x, y] data point of a line chart series. X must be a string,
// typically a date such as "2024-01-31", or a number.
type Point struct {
	X any
	Y float64
}

// MarshalJSON encodes the point as a two element array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.X, p.Y})
}

// LineSeries is one line of a [LineChart].
//
// A series carries either flat Values, whose x positions come from the
// x-axis labels, or [x, y] Points. Setting both is an error, and all series
// of a chart must use the same shape.
type LineSeries struct {
	Name           string
	Values         []float64
	Points         []Point
	IncompleteFrom string
	Type           string
}

func (s LineSeries) pairs() bool {
	return len(s.Points) > 0
}

func (s LineSeries) clone() LineSeries {
	s.Values = copyFloats(s.Values)
	if s.Points != nil {
		s.Points = append([]Point(nil), s.Points...)
	}
	return s
}

// LineChart is a line chart widget.
type LineChart struct {
	base
	series []LineSeries
	axes   Axes
}

// LineChartData is the assembled data of a [LineChart].
type LineChartData struct {
	Series []LineSeriesData `json:"series"`
	YAxis  YAxis            `json:"y_axis"`
	XAxis  XAxis            `json:"x_axis"`
}

// LineSeriesData is the wire form of a series. Data holds a []float64 or a
// []Point.
type LineSeriesData struct {
	Data           any    `json:"data"`
	Name           string `json:"name,omitempty"`
	IncompleteFrom string `json:"incomplete_from,omitempty"`
	Type           string `json:"type,omitempty"`
}

// LineChartOption configures a [LineChart] during construction.
type LineChartOption func(*LineChart) error

// WithLineSeries adds a series, as [LineChart.AddData] does.
func WithLineSeries(s LineSeries) LineChartOption {
	return func(c *LineChart) error {
		return c.AddData(s)
	}
}

// WithLineAxes sets axis metadata.
func WithLineAxes(opts ...AxisOption) LineChartOption {
	return func(c *LineChart) error {
		c.Add(opts...)
		return nil
	}
}

// NewLineChart creates a [LineChart] and registers it with d.
//
// Example:
//
//	chart, err := geckopush.NewLineChart(d, "123-abc",
//	    geckopush.WithLineSeries(geckopush.LineSeries{
//	        Name:   "GBP",
//	        Values: []float64{1.62, 1.56, 1.64},
//	    }),
//	    geckopush.WithLineAxes(geckopush.WithXAxisLabels("Jun", "Jul", "Aug")),
//	)
func NewLineChart(d *Dashboard, widgetKey string, opts ...LineChartOption) (*LineChart, error) {
	b, err := newBase(d, widgetKey, KindLineChart)
	if err != nil {
		return nil, err
	}

	c := &LineChart{base: b}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	d.register(c)
	return c, nil
}

// AddData appends a series.
//
// It returns ErrMissingData for a series without values or points,
// ErrMixedShapes for a series carrying both, and ErrInvalidType for a
// non-finite number or an x value that is neither a string nor a number. Conflicts between series are
// reported by [LineChart.AssembleData].
func (c *LineChart) AddData(s LineSeries) error {
	if len(s.Values) == 0 && len(s.Points) == 0 {
		return fmt.Errorf("%w: line series has no data", ErrMissingData)
	}
	if len(s.Values) > 0 && len(s.Points) > 0 {
		return fmt.Errorf("%w: series %q has both values and points", ErrMixedShapes, s.Name)
	}
	if err := checkFinite("line value", s.Values...); err != nil {
		return fmt.Errorf("series %q: %w", s.Name, err)
	}
	for i, p := range s.Points {
		if p.X == nil {
			return fmt.Errorf("%w: point %d of series %q has no x value", ErrMissingData, i, s.Name)
		}
		if err := checkPointX(p.X); err != nil {
			return fmt.Errorf("point %d of series %q: %w", i, s.Name, err)
		}
		if err := checkFinite("y value", p.Y); err != nil {
			return fmt.Errorf("point %d of series %q: %w", i, s.Name, err)
		}
	}
	c.series = append(c.series, s.clone())
	return nil
}

// Add updates axis metadata.
func (c *LineChart) Add(opts ...AxisOption) {
	c.axes.apply(opts)
}

// AssembleData implements [Widget].
//
// It fails when no series exist, when pair series are combined with
// x-axis labels, and when pair and value series are mixed.
func (c *LineChart) AssembleData() (any, error) {
	if len(c.series) == 0 {
		return nil, fmt.Errorf("%w: must add at least one series", ErrMissingData)
	}

	pairs := 0
	for _, s := range c.series {
		if s.pairs() {
			pairs++
		}
	}
	switch {
	case pairs == len(c.series) && c.axes.X.Labels != nil:
		return nil, ErrDuplicateLabels
	case pairs > 0 && pairs < len(c.series):
		return nil, ErrMixedShapes
	}

	axes := c.axes.clone()
	data := LineChartData{
		Series: make([]LineSeriesData, len(c.series)),
		YAxis:  axes.Y,
		XAxis:  axes.X,
	}
	for i, s := range c.series {
		s = s.clone()
		sd := LineSeriesData{
			Name:           s.Name,
			IncompleteFrom: s.IncompleteFrom,
			Type:           s.Type,
		}
		if s.pairs() {
			sd.Data = s.Points
		} else {
			sd.Data = s.Values
		}
		data.Series[i] = sd
	}
	return data, nil
}

// Payload implements [Widget].
func (c *LineChart) Payload() (Payload, error) {
	return c.payload(c.AssembleData)
}

// Push implements [Widget].
func (c *LineChart) Push(ctx context.Context) (PushResult, error) {
	return c.push(ctx, c.AssembleData)
}
