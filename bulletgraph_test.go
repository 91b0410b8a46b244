package geckopush

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fullBullet(label string) Bullet {
	return Bullet{
		Label:          String(label),
		Sublabel:       "sub",
		Axis:           []float64{0, 200, 400},
		RedStart:       Float(0),
		RedEnd:         Float(100),
		AmberStart:     Float(101),
		AmberEnd:       Float(200),
		GreenStart:     Float(201),
		GreenEnd:       Float(400),
		CurrentStart:   Float(0),
		CurrentEnd:     Float(150),
		ProjectedStart: Float(0),
		ProjectedEnd:   Float(300),
		Comparative:    Float(250),
	}
}

const fullBulletJSON = `{
	"label":"%s",
	"sublabel":"sub",
	"axis":{"point":[0,200,400]},
	"range":{
		"red":{"start":0,"end":100},
		"amber":{"start":101,"end":200},
		"green":{"start":201,"end":400}
	},
	"measure":{
		"current":{"start":0,"end":150},
		"projected":{"start":0,"end":300}
	},
	"comparative":{"point":250}
}`

func TestBulletGraph_SingleMultiple(t *testing.T) {
	g, err := NewBulletGraph(offlineDashboard(t), "bullet", WithBullet(fullBullet("Revenue")))
	if err != nil {
		t.Fatalf("NewBulletGraph() error = %v", err)
	}

	want := decodeJSON(t, `{"orientation":null,"item":`+fmt.Sprintf(fullBulletJSON, "Revenue")+`}`)
	if diff := cmp.Diff(want, assembled(t, g)); diff != "" {
		t.Errorf("AssembleData() mismatch (-want +got):\n%s", diff)
	}
}

func TestBulletGraph_SeveralMultiples(t *testing.T) {
	g, err := NewBulletGraph(offlineDashboard(t), "bullet",
		WithOrientation("vertical"),
		WithBullet(fullBullet("A")),
		WithBullet(fullBullet("B")),
	)
	if err != nil {
		t.Fatalf("NewBulletGraph() error = %v", err)
	}

	want := decodeJSON(t, `{"orientation":"vertical","item":[`+
		fmt.Sprintf(fullBulletJSON, "A")+`,`+fmt.Sprintf(fullBulletJSON, "B")+`]}`)
	if diff := cmp.Diff(want, assembled(t, g)); diff != "" {
		t.Errorf("AssembleData() mismatch (-want +got):\n%s", diff)
	}
}

func TestBulletGraph_FifthMultipleFails(t *testing.T) {
	g, _ := NewBulletGraph(offlineDashboard(t), "bullet")
	for i := 0; i < maxBulletMultiples; i++ {
		if err := g.AddData(fullBullet("x")); err != nil {
			t.Fatalf("AddData(%d) error = %v", i, err)
		}
	}

	if err := g.AddData(fullBullet("fifth")); !errors.Is(err, ErrTooManyItems) {
		t.Errorf("AddData() 5th multiple error = %v, want ErrTooManyItems", err)
	}
}

func TestBulletGraph_AllOrNone(t *testing.T) {
	partial := fullBullet("x")
	partial.Comparative = nil

	labelOnly := Bullet{Label: String("x")}

	tests := []struct {
		name      string
		bullet    Bullet
		wantErr   error
		wantItems int
	}{
		{name: "all thirteen", bullet: fullBullet("x"), wantItems: 1},
		{name: "twelve of thirteen", bullet: partial, wantErr: ErrPartialBundle},
		{name: "one of thirteen", bullet: labelOnly, wantErr: ErrPartialBundle},
		{name: "none", bullet: Bullet{Sublabel: "ignored"}, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := NewBulletGraph(offlineDashboard(t), "bullet")
			err := g.AddData(tt.bullet)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddData() error = %v, want %v", err, tt.wantErr)
			}
			if len(g.items) != tt.wantItems {
				t.Errorf("len(items) = %d, want %d", len(g.items), tt.wantItems)
			}
		})
	}
}

func TestBulletGraph_EmptyOrientationIgnored(t *testing.T) {
	g, _ := NewBulletGraph(offlineDashboard(t), "bullet", WithBullet(fullBullet("x")))
	g.Add("horizontal")
	g.Add("")

	data, err := g.AssembleData()
	if err != nil {
		t.Fatalf("AssembleData() error = %v", err)
	}
	got := data.(BulletGraphData).Orientation
	if got == nil || *got != "horizontal" {
		t.Errorf("Orientation = %v, want horizontal", got)
	}
}

func TestBulletGraph_MissingData(t *testing.T) {
	g, _ := NewBulletGraph(offlineDashboard(t), "bullet")
	if _, err := g.AssembleData(); !errors.Is(err, ErrMissingData) {
		t.Errorf("AssembleData() error = %v, want ErrMissingData", err)
	}
}

func TestBulletGraph_NonFiniteFails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bullet)
	}{
		{"nan axis point", func(b *Bullet) { b.Axis = []float64{0, math.NaN()} }},
		{"infinite red end", func(b *Bullet) { b.RedEnd = Float(math.Inf(1)) }},
		{"nan comparative", func(b *Bullet) { b.Comparative = Float(math.NaN()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := NewBulletGraph(offlineDashboard(t), "bullet")
			b := fullBullet("Revenue")
			tt.mutate(&b)
			if err := g.AddData(b); !errors.Is(err, ErrInvalidType) {
				t.Errorf("AddData() error = %v, want ErrInvalidType", err)
			}
		})
	}
}
