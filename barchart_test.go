package geckopush

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBarChart_AssembleData(t *testing.T) {
	tests := []struct {
		name string
		opts []BarChartOption
		want string
	}{
		{
			name: "single series without axes",
			opts: []BarChartOption{WithBarSeries(1, 2, 3)},
			want: `{"x_axis":{},"y_axis":{},"series":[{"data":[1,2,3]}]}`,
		},
		{
			name: "two series with axes",
			opts: []BarChartOption{
				WithBarSeries(1, 2),
				WithBarSeries(3, 4),
				WithBarAxes(
					WithXAxisLabels("Jan", "Feb"),
					WithXAxisType("standard"),
					WithYAxisFormat("currency"),
					WithYAxisUnit("USD"),
				),
			},
			want: `{
				"x_axis":{"labels":["Jan","Feb"],"type":"standard"},
				"y_axis":{"format":"currency","unit":"USD"},
				"series":[{"data":[1,2]},{"data":[3,4]}]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewBarChart(offlineDashboard(t), "bar", tt.opts...)
			if err != nil {
				t.Fatalf("NewBarChart() error = %v", err)
			}
			if diff := cmp.Diff(decodeJSON(t, tt.want), assembled(t, c)); diff != "" {
				t.Errorf("AssembleData() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBarChart_AddTwiceFails(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar")

	if err := c.Add([]float64{1, 2, 3}); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	if err := c.Add([]float64{4, 5, 6}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Add() error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestBarChart_AddAfterAddDataFails(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar", WithBarSeries(1))

	if err := c.Add([]float64{2}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("Add() error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestBarChart_AddNilUpdatesAxesOnly(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar", WithBarSeries(7))

	if err := c.Add(nil, WithYAxisFormat("percent")); err != nil {
		t.Fatalf("Add(nil) error = %v", err)
	}

	want := decodeJSON(t, `{"x_axis":{},"y_axis":{"format":"percent"},"series":[{"data":[7]}]}`)
	if diff := cmp.Diff(want, assembled(t, c)); diff != "" {
		t.Errorf("AssembleData() mismatch (-want +got):\n%s", diff)
	}
}

func TestBarChart_MissingData(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar")

	if err := c.AddData(); !errors.Is(err, ErrMissingData) {
		t.Errorf("AddData() with no values error = %v, want ErrMissingData", err)
	}
	if _, err := c.AssembleData(); !errors.Is(err, ErrMissingData) {
		t.Errorf("AssembleData() error = %v, want ErrMissingData", err)
	}
}

func TestBarChart_InputIsCopied(t *testing.T) {
	values := []float64{1, 2}
	c, _ := NewBarChart(offlineDashboard(t), "bar")
	if err := c.AddData(values...); err != nil {
		t.Fatalf("AddData() error = %v", err)
	}
	values[0] = 99

	want := decodeJSON(t, `{"x_axis":{},"y_axis":{},"series":[{"data":[1,2]}]}`)
	if diff := cmp.Diff(want, assembled(t, c)); diff != "" {
		t.Errorf("caller mutation leaked into widget (-want +got):\n%s", diff)
	}
}

func TestBarChart_AddEmptyFails(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar")

	if err := c.Add([]float64{}); !errors.Is(err, ErrMissingData) {
		t.Errorf("Add(empty) error = %v, want ErrMissingData", err)
	}
	if err := c.Add([]float64{1}); err != nil {
		t.Errorf("Add() after rejected empty series error = %v", err)
	}
}

func TestBarChart_NonFiniteFails(t *testing.T) {
	c, _ := NewBarChart(offlineDashboard(t), "bar")

	if err := c.AddData(1, math.NaN()); !errors.Is(err, ErrInvalidType) {
		t.Errorf("AddData(NaN) error = %v, want ErrInvalidType", err)
	}
	if err := c.Add([]float64{math.Inf(1)}); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Add(+Inf) error = %v, want ErrInvalidType", err)
	}
	if _, err := c.AssembleData(); !errors.Is(err, ErrMissingData) {
		t.Errorf("AssembleData() error = %v, want ErrMissingData", err)
	}
}
