package geckopush

import (
	"context"
	"fmt"
)

// BarChart is a bar chart widget holding one or more data series.
//
// The first series is the primary one. [BarChart.Add] may populate it once;
// [BarChart.AddData] appends further series.
type BarChart struct {
	base
	series [][]float64
	axes   Axes
}

// BarChartData is the assembled data of a [BarChart].
type BarChartData struct {
	XAxis  XAxis       `json:"x_axis"`
	YAxis  YAxis       `json:"y_axis"`
	Series []BarSeries `json:"series"`
}

// BarSeries is one series of a [BarChartData].
type BarSeries struct {
	Data []float64 `json:"data"`
}

// BarChartOption configures a [BarChart] during construction.
type BarChartOption func(*BarChart) error

// WithBarSeries appends a series, as [BarChart.AddData] does.
func WithBarSeries(data ...float64) BarChartOption {
	return func(c *BarChart) error {
		return c.AddData(data...)
	}
}

// WithBarAxes sets axis metadata.
func WithBarAxes(opts ...AxisOption) BarChartOption {
	return func(c *BarChart) error {
		c.axes.apply(opts)
		return nil
	}
}

// NewBarChart creates a [BarChart] and registers it with d.
//
// Example:
//
//	chart, err := geckopush.NewBarChart(d, "123-abc",
//	    geckopush.WithBarSeries(1, 2, 3),
//	    geckopush.WithBarAxes(geckopush.WithXAxisLabels("Jan", "Feb", "Mar")),
//	)
func NewBarChart(d *Dashboard, widgetKey string, opts ...BarChartOption) (*BarChart, error) {
	b, err := newBase(d, widgetKey, KindBarChart)
	if err != nil {
		return nil, err
	}

	c := &BarChart{base: b}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	d.register(c)
	return c, nil
}

// AddData appends a data series.
func (c *BarChart) AddData(data ...float64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: bar chart series has no values", ErrMissingData)
	}
	if err := checkFinite("bar chart value", data...); err != nil {
		return err
	}
	c.series = append(c.series, copyFloats(data))
	return nil
}

// Add populates the primary series and updates axis metadata.
//
// The primary series can only be populated once, whether through Add or a
// first [BarChart.AddData]; a second attempt returns ErrAlreadyInitialized.
// A nil data slice only updates the axes; an empty non-nil one is
// ErrMissingData.
func (c *BarChart) Add(data []float64, opts ...AxisOption) error {
	if data != nil {
		if len(c.series) > 0 {
			return ErrAlreadyInitialized
		}
		if len(data) == 0 {
			return fmt.Errorf("%w: bar chart series has no values", ErrMissingData)
		}
		if err := checkFinite("bar chart value", data...); err != nil {
			return err
		}
		c.series = append(c.series, copyFloats(data))
	}
	c.axes.apply(opts)
	return nil
}

// AssembleData implements [Widget].
func (c *BarChart) AssembleData() (any, error) {
	if len(c.series) == 0 {
		return nil, ErrMissingData
	}

	axes := c.axes.clone()
	data := BarChartData{
		XAxis:  axes.X,
		YAxis:  axes.Y,
		Series: make([]BarSeries, len(c.series)),
	}
	for i, s := range c.series {
		data.Series[i] = BarSeries{Data: copyFloats(s)}
	}
	return data, nil
}

// Payload implements [Widget].
func (c *BarChart) Payload() (Payload, error) {
	return c.payload(c.AssembleData)
}

// Push implements [Widget].
func (c *BarChart) Push(ctx context.Context) (PushResult, error) {
	return c.push(ctx, c.AssembleData)
}
