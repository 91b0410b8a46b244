package geckopush

// XAxis is the x-axis metadata of bar and line charts.
type XAxis struct {
	Labels []string `json:"labels,omitempty"`
	Type   string   `json:"type,omitempty"`
}

// YAxis is the y-axis metadata of bar and line charts.
type YAxis struct {
	Format string `json:"format,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// Axes holds both axes of a chart.
type Axes struct {
	X XAxis
	Y YAxis
}

// AxisOption sets axis metadata. Empty values leave the current setting
// untouched.
type AxisOption func(*Axes)

// WithXAxisLabels sets the x-axis labels.
func WithXAxisLabels(labels ...string) AxisOption {
	return func(a *Axes) {
		if labels != nil {
			a.X.Labels = copyStrings(labels)
		}
	}
}

// WithXAxisType sets the x-axis type, e.g. "datetime" or "standard".
func WithXAxisType(t string) AxisOption {
	return func(a *Axes) {
		if t != "" {
			a.X.Type = t
		}
	}
}

// WithYAxisFormat sets the y-axis format, e.g. "decimal", "percent" or
// "currency".
func WithYAxisFormat(format string) AxisOption {
	return func(a *Axes) {
		if format != "" {
			a.Y.Format = format
		}
	}
}

// WithYAxisUnit sets the y-axis unit, e.g. "USD" for currency.
func WithYAxisUnit(unit string) AxisOption {
	return func(a *Axes) {
		if unit != "" {
			a.Y.Unit = unit
		}
	}
}

func (a *Axes) apply(opts []AxisOption) {
	for _, opt := range opts {
		opt(a)
	}
}

func (a Axes) clone() Axes {
	a.X.Labels = copyStrings(a.X.Labels)
	return a
}
