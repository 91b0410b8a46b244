package geckopush

import (
	"context"
	"fmt"
)

const (
	maxBulletMultiples = 4
	bulletRequired     = 13
)

// Bullet is one multiple of a [BulletGraph].
//
// Label, Axis and the eleven range/measure/comparative values are required
// as a bundle: either all thirteen are set or none are. Nil means unset.
// Sublabel is optional.
type Bullet struct {
	Label    *string
	Sublabel string
	Axis     []float64

	RedStart, RedEnd     *float64
	AmberStart, AmberEnd *float64
	GreenStart, GreenEnd *float64

	CurrentStart, CurrentEnd     *float64
	ProjectedStart, ProjectedEnd *float64

	Comparative *float64
}

// present counts the required fields that are set.
func (b Bullet) present() int {
	n := 0
	if b.Label != nil {
		n++
	}
	if b.Axis != nil {
		n++
	}
	for _, v := range []*float64{
		b.RedStart, b.RedEnd,
		b.AmberStart, b.AmberEnd,
		b.GreenStart, b.GreenEnd,
		b.CurrentStart, b.CurrentEnd,
		b.ProjectedStart, b.ProjectedEnd,
		b.Comparative,
	} {
		if v != nil {
			n++
		}
	}
	return n
}

// BulletGraph is a bullet graph widget with up to four multiples.
type BulletGraph struct {
	base
	orientation string
	items       []BulletItem
}

// BulletGraphData is the assembled data of a [BulletGraph]. Item holds a
// single [BulletItem] when there is one multiple and a []BulletItem
// otherwise. Orientation is null when unset.
type BulletGraphData struct {
	Orientation *string `json:"orientation"`
	Item        any     `json:"item"`
}

// BulletItem is the wire form of one multiple.
type BulletItem struct {
	Label       string        `json:"label"`
	Sublabel    string        `json:"sublabel,omitempty"`
	Axis        BulletAxis    `json:"axis"`
	Range       BulletRange   `json:"range"`
	Measure     BulletMeasure `json:"measure"`
	Comparative BulletPoint   `json:"comparative"`
}

// BulletAxis holds the axis tick points.
type BulletAxis struct {
	Point []float64 `json:"point"`
}

// BulletRange holds the red, amber and green bands.
type BulletRange struct {
	Red   Span `json:"red"`
	Amber Span `json:"amber"`
	Green Span `json:"green"`
}

// BulletMeasure holds the current and projected measures.
type BulletMeasure struct {
	Current   Span `json:"current"`
	Projected Span `json:"projected"`
}

// BulletPoint is a single marker value.
type BulletPoint struct {
	Point float64 `json:"point"`
}

// Span is a start/end pair.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// BulletGraphOption configures a [BulletGraph] during construction.
type BulletGraphOption func(*BulletGraph) error

// WithOrientation sets the orientation, "horizontal" or "vertical".
func WithOrientation(orientation string) BulletGraphOption {
	return func(g *BulletGraph) error {
		g.Add(orientation)
		return nil
	}
}

// WithBullet adds a multiple, as [BulletGraph.AddData] does.
func WithBullet(b Bullet) BulletGraphOption {
	return func(g *BulletGraph) error {
		return g.AddData(b)
	}
}

// NewBulletGraph creates a [BulletGraph] and registers it with d.
func NewBulletGraph(d *Dashboard, widgetKey string, opts ...BulletGraphOption) (*BulletGraph, error) {
	b, err := newBase(d, widgetKey, KindBulletGraph)
	if err != nil {
		return nil, err
	}

	g := &BulletGraph{base: b}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	d.register(g)
	return g, nil
}

// Add sets the orientation. An empty string leaves it unchanged.
func (g *BulletGraph) Add(orientation string) {
	if orientation != "" {
		g.orientation = orientation
	}
}

// AddData adds a multiple.
//
// It returns ErrTooManyItems once four multiples exist and ErrPartialBundle
// when only some of the required fields are set. A multiple with none of
// them set is accepted and ignored.
func (g *BulletGraph) AddData(b Bullet) error {
	if len(g.items) >= maxBulletMultiples {
		return fmt.Errorf("%w: bullet graphs support a maximum of %d multiples", ErrTooManyItems, maxBulletMultiples)
	}

	n := b.present()
	if n == 0 {
		return nil
	}
	if n < bulletRequired {
		return fmt.Errorf("%w: %d of %d required fields set", ErrPartialBundle, n, bulletRequired)
	}
	if err := checkFinite("bullet axis point", b.Axis...); err != nil {
		return err
	}
	if err := checkFinitePtrs("bullet value",
		b.RedStart, b.RedEnd,
		b.AmberStart, b.AmberEnd,
		b.GreenStart, b.GreenEnd,
		b.CurrentStart, b.CurrentEnd,
		b.ProjectedStart, b.ProjectedEnd,
		b.Comparative,
	); err != nil {
		return err
	}

	g.items = append(g.items, BulletItem{
		Label:    *b.Label,
		Sublabel: b.Sublabel,
		Axis:     BulletAxis{Point: copyFloats(b.Axis)},
		Range: BulletRange{
			Red:   Span{Start: *b.RedStart, End: *b.RedEnd},
			Amber: Span{Start: *b.AmberStart, End: *b.AmberEnd},
			Green: Span{Start: *b.GreenStart, End: *b.GreenEnd},
		},
		Measure: BulletMeasure{
			Current:   Span{Start: *b.CurrentStart, End: *b.CurrentEnd},
			Projected: Span{Start: *b.ProjectedStart, End: *b.ProjectedEnd},
		},
		Comparative: BulletPoint{Point: *b.Comparative},
	})
	return nil
}

// AssembleData implements [Widget].
func (g *BulletGraph) AssembleData() (any, error) {
	if len(g.items) == 0 {
		return nil, ErrMissingData
	}

	items := make([]BulletItem, len(g.items))
	for i, it := range g.items {
		it.Axis.Point = copyFloats(it.Axis.Point)
		items[i] = it
	}

	data := BulletGraphData{}
	if g.orientation != "" {
		data.Orientation = String(g.orientation)
	}
	if len(items) == 1 {
		data.Item = items[0]
	} else {
		data.Item = items
	}
	return data, nil
}

// Payload implements [Widget].
func (g *BulletGraph) Payload() (Payload, error) {
	return g.payload(g.AssembleData)
}

// Push implements [Widget].
func (g *BulletGraph) Push(ctx context.Context) (PushResult, error) {
	return g.push(ctx, g.AssembleData)
}
