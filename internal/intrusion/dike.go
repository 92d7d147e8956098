// Package intrusion generates randomized dike emplacement events and
// rasterizes them onto the grid.
package intrusion

import (
	"fmt"
	"math"

	"dikesim/internal/grid"
)

// Shape is the closed set of dike cross-section geometries.
type Shape int

const (
	// ShapeRect is a rotated rectangle of width x thickness.
	ShapeRect Shape = iota
	// ShapeLens is a rotated ellipse (elastic-lens cross section)
	// with the same width and thickness as axes.
	ShapeLens
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeLens:
		return "lens"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape maps a config string to a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "rect", "rectangular":
		return ShapeRect, nil
	case "lens", "elliptical":
		return ShapeLens, nil
	default:
		return 0, fmt.Errorf("intrusion: unknown shape %q", s)
	}
}

// Dike describes one intrusion event. It is created by the engine,
// rasterized immediately, and not retained.
type Dike struct {
	Width     float64 // extent along the dike plane, m
	Thickness float64 // extent across the dike plane, m
	CenterX   float64
	CenterZ   float64
	Angle     float64 // rotation from horizontal, radians
	Temp      float64 // emplacement temperature
	Shape     Shape
}

// local maps a world point into the dike frame: u along the width
// axis, v across the thickness.
func (d *Dike) local(x, z float64) (u, v float64) {
	dx := x - d.CenterX
	dz := z - d.CenterZ
	sin, cos := math.Sincos(d.Angle)
	return dx*cos + dz*sin, -dx*sin + dz*cos
}

// Covers reports whether the world point lies inside the dike.
func (d *Dike) Covers(x, z float64) bool {
	u, v := d.local(x, z)
	hw, ht := d.Width/2, d.Thickness/2
	switch d.Shape {
	case ShapeLens:
		return (u/hw)*(u/hw)+(v/ht)*(v/ht) <= 1
	default:
		return math.Abs(u) <= hw && math.Abs(v) <= ht
	}
}

// Rasterize returns the flat indices of every cell whose center falls
// inside the dike. Cells outside the domain are clipped away; a dike
// straddling the boundary keeps its in-domain part.
func (d *Dike) Rasterize(g *grid.Grid) []int {
	// Bounding half-extent of the rotated shape.
	r := math.Hypot(d.Width/2, d.Thickness/2)

	i0, j0 := g.NearestCell(d.CenterX-r, d.CenterZ-r)
	i1, j1 := g.NearestCell(d.CenterX+r, d.CenterZ+r)

	var cells []int
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			if d.Covers(g.X[i], g.Z[j]) {
				cells = append(cells, g.Index(i, j))
			}
		}
	}
	return cells
}

// Area returns the analytic cross-section area of the dike.
func (d *Dike) Area() float64 {
	switch d.Shape {
	case ShapeLens:
		return math.Pi * (d.Width / 2) * (d.Thickness / 2)
	default:
		return d.Width * d.Thickness
	}
}
