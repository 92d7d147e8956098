package intrusion

import (
	"math"
	"testing"

	"dikesim/internal/grid"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"rect", ShapeRect, true},
		{"rectangular", ShapeRect, true},
		{"lens", ShapeLens, true},
		{"elliptical", ShapeLens, true},
		{"blob", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseShape(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseShape(%q): expected error", tt.in)
		}
	}
}

func TestRasterizeFootprintMatchesArea(t *testing.T) {
	// Fine grid, shape well inside the domain: the rasterized cell
	// count approximates the analytic area divided by cell area.
	g, _ := grid.New(200, 200, 0.5, 0.5)

	tests := []struct {
		name string
		dike Dike
	}{
		{"axis-aligned rect", Dike{Width: 30, Thickness: 10, CenterX: 50, CenterZ: 50, Shape: ShapeRect}},
		{"rotated rect", Dike{Width: 30, Thickness: 10, CenterX: 50, CenterZ: 50, Angle: 0.6, Shape: ShapeRect}},
		{"lens", Dike{Width: 30, Thickness: 10, CenterX: 50, CenterZ: 50, Shape: ShapeLens}},
		{"rotated lens", Dike{Width: 30, Thickness: 10, CenterX: 50, CenterZ: 50, Angle: -0.8, Shape: ShapeLens}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := tt.dike.Rasterize(g)
			got := float64(len(cells)) * g.CellArea()
			want := tt.dike.Area()
			if math.Abs(got-want) > 0.05*want {
				t.Errorf("rasterized area %g vs analytic %g", got, want)
			}
		})
	}
}

func TestCoversRotation(t *testing.T) {
	// A thin dike rotated 90 degrees becomes vertical: points along
	// the original horizontal axis fall outside.
	d := Dike{Width: 20, Thickness: 2, CenterX: 0, CenterZ: 0, Angle: math.Pi / 2, Shape: ShapeRect}

	if !d.Covers(0, 8) {
		t.Error("point along rotated width axis should be covered")
	}
	if d.Covers(8, 0) {
		t.Error("point along original width axis should not be covered")
	}
}

func TestRasterizeDisjointGrids(t *testing.T) {
	g, _ := grid.New(10, 10, 1, 1)
	d := Dike{Width: 4, Thickness: 2, CenterX: -100, CenterZ: -100, Shape: ShapeRect}
	if cells := d.Rasterize(g); len(cells) != 0 {
		t.Errorf("expected empty footprint, got %d cells", len(cells))
	}
}
