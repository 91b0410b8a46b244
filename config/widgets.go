package config

import (
	"fmt"

	"github.com/jpalmerr/geckopush"
	"gopkg.in/yaml.v3"
)

// AxesConfig holds chart axis metadata.
//
//	x_axis:
//	  labels: [Jan, Feb, Mar]
//	  type: standard
//	y_axis:
//	  format: currency
//	  unit: USD
type AxesConfig struct {
	XAxis struct {
		Labels []string `yaml:"labels"`
		Type   string   `yaml:"type"`
	} `yaml:"x_axis"`

	YAxis struct {
		Format string `yaml:"format"`
		Unit   string `yaml:"unit"`
	} `yaml:"y_axis"`
}

func (a AxesConfig) options() []geckopush.AxisOption {
	return []geckopush.AxisOption{
		geckopush.WithXAxisLabels(a.XAxis.Labels...),
		geckopush.WithXAxisType(a.XAxis.Type),
		geckopush.WithYAxisFormat(a.YAxis.Format),
		geckopush.WithYAxisUnit(a.YAxis.Unit),
	}
}

// BarChartConfig configures a bar chart.
//
//	- type: bar_chart
//	  key: 123-abc
//	  series:
//	    - [1, 2, 3]
//	  x_axis: {labels: [Jan, Feb, Mar]}
type BarChartConfig struct {
	AxesConfig `yaml:",inline"`
	Series     [][]float64 `yaml:"series"`
}

func (c *BarChartConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	opts := []geckopush.BarChartOption{geckopush.WithBarAxes(c.AxesConfig.options()...)}
	for _, s := range c.Series {
		opts = append(opts, geckopush.WithBarSeries(s...))
	}
	return geckopush.NewBarChart(d, key, opts...)
}

// SpanConfig is a start/end pair.
type SpanConfig struct {
	Start *float64 `yaml:"start"`
	End   *float64 `yaml:"end"`
}

func (s *SpanConfig) bounds() (start, end *float64) {
	if s == nil {
		return nil, nil
	}
	return s.Start, s.End
}

// BulletConfig is one multiple of a bullet graph. Every field except
// sublabel is required.
//
//	label: Revenue
//	sublabel: USD
//	axis: [0, 200, 400]
//	red: {start: 0, end: 100}
//	amber: {start: 101, end: 200}
//	green: {start: 201, end: 400}
//	current: {start: 0, end: 150}
//	projected: {start: 0, end: 300}
//	comparative: 250
type BulletConfig struct {
	Label       *string     `yaml:"label"`
	Sublabel    string      `yaml:"sublabel"`
	Axis        []float64   `yaml:"axis"`
	Red         *SpanConfig `yaml:"red"`
	Amber       *SpanConfig `yaml:"amber"`
	Green       *SpanConfig `yaml:"green"`
	Current     *SpanConfig `yaml:"current"`
	Projected   *SpanConfig `yaml:"projected"`
	Comparative *float64    `yaml:"comparative"`
}

func (b BulletConfig) bullet() geckopush.Bullet {
	out := geckopush.Bullet{
		Label:       b.Label,
		Sublabel:    b.Sublabel,
		Axis:        b.Axis,
		Comparative: b.Comparative,
	}
	out.RedStart, out.RedEnd = b.Red.bounds()
	out.AmberStart, out.AmberEnd = b.Amber.bounds()
	out.GreenStart, out.GreenEnd = b.Green.bounds()
	out.CurrentStart, out.CurrentEnd = b.Current.bounds()
	out.ProjectedStart, out.ProjectedEnd = b.Projected.bounds()
	return out
}

// BulletGraphConfig configures a bullet graph.
type BulletGraphConfig struct {
	Orientation string         `yaml:"orientation"`
	Bullets     []BulletConfig `yaml:"bullets"`
}

func (c *BulletGraphConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	opts := []geckopush.BulletGraphOption{geckopush.WithOrientation(c.Orientation)}
	for _, b := range c.Bullets {
		opts = append(opts, geckopush.WithBullet(b.bullet()))
	}
	return geckopush.NewBulletGraph(d, key, opts...)
}

// FunnelConfig configures a funnel.
type FunnelConfig struct {
	FunnelType string `yaml:"funnel_type"`
	Percentage string `yaml:"percentage"`
	Steps      []struct {
		Value float64 `yaml:"value"`
		Label string  `yaml:"label"`
	} `yaml:"steps"`
}

func (c *FunnelConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	opts := []geckopush.FunnelOption{
		geckopush.WithFunnelType(c.FunnelType),
		geckopush.WithFunnelPercentage(c.Percentage),
	}
	for _, s := range c.Steps {
		opts = append(opts, geckopush.WithFunnelStep(s.Value, s.Label))
	}
	return geckopush.NewFunnel(d, key, opts...)
}

// GeckoMeterConfig configures a gauge. Item, min and max are all required;
// a missing one is reported when the widget is assembled.
type GeckoMeterConfig struct {
	Item *float64 `yaml:"item"`
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
}

func (c *GeckoMeterConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	var opts []geckopush.GeckoMeterOption
	if c.Item != nil {
		opts = append(opts, geckopush.WithMeterItem(*c.Item))
	}
	if c.Min != nil && c.Max != nil {
		opts = append(opts, geckopush.WithMeterRange(*c.Min, *c.Max))
	}
	return geckopush.NewGeckoMeter(d, key, opts...)
}

// HighChartsConfig configures a Highcharts widget. The chart definition
// must be a YAML string, typically a block scalar:
//
//	highchart: |
//	  {chart: {type: 'line'}, series: [{data: [1, 2, 3]}]}
type HighChartsConfig struct {
	Highchart yaml.Node `yaml:"highchart"`
}

func (c *HighChartsConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	var opts []geckopush.HighChartsOption
	switch {
	case c.Highchart.Kind == 0:
		// unset, reported as missing data on assembly
	case c.Highchart.Kind != yaml.ScalarNode || c.Highchart.ShortTag() != "!!str":
		return nil, fmt.Errorf("%w: highchart must be a string, got %s", geckopush.ErrInvalidType, describeNode(&c.Highchart))
	default:
		opts = append(opts, geckopush.WithChart(c.Highchart.Value))
	}
	return geckopush.NewHighCharts(d, key, opts...)
}

// LeaderboardConfig configures a leaderboard.
type LeaderboardConfig struct {
	Format string `yaml:"format"`
	Unit   string `yaml:"unit"`
	Items  []struct {
		Label        string   `yaml:"label"`
		Value        *float64 `yaml:"value"`
		PreviousRank *int     `yaml:"previous_rank"`
	} `yaml:"items"`
}

func (c *LeaderboardConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	opts := []geckopush.LeaderboardOption{
		geckopush.WithLeaderboardFormat(c.Format),
		geckopush.WithLeaderboardUnit(c.Unit),
	}
	for _, it := range c.Items {
		opts = append(opts, geckopush.WithLeaderboardItem(geckopush.LeaderboardItem{
			Label:        it.Label,
			Value:        it.Value,
			PreviousRank: it.PreviousRank,
		}))
	}
	return geckopush.NewLeaderboard(d, key, opts...)
}

// PointConfig is an [x, y] pair. Numeric x values are kept as numbers,
// anything else as a string.
type PointConfig geckopush.Point

// UnmarshalYAML implements yaml.Unmarshaler for PointConfig.
func (p *PointConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: point must be an [x, y] pair", node.Line)
	}

	xNode, yNode := node.Content[0], node.Content[1]
	switch xNode.ShortTag() {
	case "!!int", "!!float":
		var x float64
		if err := xNode.Decode(&x); err != nil {
			return err
		}
		p.X = x
	default:
		p.X = xNode.Value
	}

	if err := yNode.Decode(&p.Y); err != nil {
		return fmt.Errorf("line %d: point y value: %w", yNode.Line, err)
	}
	return nil
}

// LineSeriesConfig is one series of a line chart. Either values or points
// must be given.
type LineSeriesConfig struct {
	Name           string        `yaml:"name"`
	Values         []float64     `yaml:"values"`
	Points         []PointConfig `yaml:"points"`
	IncompleteFrom string        `yaml:"incomplete_from"`
	Type           string        `yaml:"type"`
}

// LineChartConfig configures a line chart.
//
//	- type: line_chart
//	  key: 123-abc
//	  series:
//	    - name: GBP
//	      points: [[2024-01-01, 1.62], [2024-01-02, 1.56]]
//	  x_axis: {type: datetime}
type LineChartConfig struct {
	AxesConfig `yaml:",inline"`
	Series     []LineSeriesConfig `yaml:"series"`
}

func (c *LineChartConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	opts := []geckopush.LineChartOption{geckopush.WithLineAxes(c.AxesConfig.options()...)}
	for _, s := range c.Series {
		var points []geckopush.Point
		for _, p := range s.Points {
			points = append(points, geckopush.Point(p))
		}
		opts = append(opts, geckopush.WithLineSeries(geckopush.LineSeries{
			Name:           s.Name,
			Values:         s.Values,
			Points:         points,
			IncompleteFrom: s.IncompleteFrom,
			Type:           s.Type,
		}))
	}
	return geckopush.NewLineChart(d, key, opts...)
}

// ListConfig configures a text list.
type ListConfig struct {
	Items []struct {
		Text        string `yaml:"text"`
		Name        string `yaml:"name"`
		Color       string `yaml:"color"`
		Description string `yaml:"description"`
	} `yaml:"items"`
}

func (c *ListConfig) build(d *geckopush.Dashboard, key string) (geckopush.Widget, error) {
	var opts []geckopush.ListOption
	for _, it := range c.Items {
		opts = append(opts, geckopush.WithListEntry(geckopush.ListEntry{
			Text:        it.Text,
			Name:        it.Name,
			Color:       it.Color,
			Description: it.Description,
		}))
	}
	return geckopush.NewList(d, key, opts...)
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "list"
	default:
		return n.ShortTag()
	}
}
