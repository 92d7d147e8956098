// Package tracer maintains the Lagrangian marker particles recording
// local thermal history.
package tracer

import (
	"math"
	"math/rand"

	"dikesim/internal/compute"
	"dikesim/internal/field"
	"dikesim/internal/grid"
	"dikesim/internal/intrusion"
)

// Tracer is a read-only snapshot of one marker.
type Tracer struct {
	X, Z   float64
	Temp   float64
	Phi    float64
	Active bool
}

// Arena stores markers in contiguous parallel slices with
// monotonically assigned slot indices. Slots are never reused or
// removed; an index handed out once stays valid for the run.
type Arena struct {
	xs, zs  []float64
	temps   []float64
	phis    []float64
	active  []bool
	backend compute.Backend
}

func NewArena(backend compute.Backend) *Arena {
	return &Arena{backend: backend}
}

// Len returns the number of allocated slots.
func (a *Arena) Len() int { return len(a.xs) }

// At returns the marker in slot i.
func (a *Arena) At(i int) Tracer {
	return Tracer{
		X: a.xs[i], Z: a.zs[i],
		Temp: a.temps[i], Phi: a.phis[i],
		Active: a.active[i],
	}
}

// InsertBatch allocates count markers at positions sampled inside the
// dike footprint and tagged with its emplacement temperature. Draws
// come from the caller's seeded source in slot order, so batches are
// reproducible. Returns the index range [first, first+count) of the
// new slots.
func (a *Arena) InsertBatch(rng *rand.Rand, d *intrusion.Dike, count int) (first int) {
	first = len(a.xs)
	sin, cos := math.Sincos(d.Angle)

	for n := 0; n < count; n++ {
		var u, v float64
		for {
			u = (rng.Float64() - 0.5) * d.Width
			v = (rng.Float64() - 0.5) * d.Thickness
			if d.Shape != intrusion.ShapeLens {
				break
			}
			hw, ht := d.Width/2, d.Thickness/2
			if (u/hw)*(u/hw)+(v/ht)*(v/ht) <= 1 {
				break
			}
		}

		a.xs = append(a.xs, d.CenterX+u*cos-v*sin)
		a.zs = append(a.zs, d.CenterZ+u*sin+v*cos)
		a.temps = append(a.temps, d.Temp)
		a.phis = append(a.phis, 1)
		a.active = append(a.active, true)
	}
	return first
}

// Update refreshes every marker's temperature and melt fraction by
// nearest-cell sampling of the current fields. Markers only read the
// field and write their own slot, so the bulk kernel runs them in
// parallel.
func (a *Arena) Update(f *field.Fields, g *grid.Grid) {
	if len(a.xs) == 0 {
		return
	}

	args := compute.SampleArgs{
		Xs: a.xs, Zs: a.zs,
		Nx: g.Nx, Nz: g.Nz,
		Dx: g.Dx, Dz: g.Dz,
	}

	args.Field, args.Out = f.T, a.temps
	a.backend.SampleNearest(args)

	args.Field, args.Out = f.Phi, a.phis
	a.backend.SampleNearest(args)
}

// Snapshot returns a detached copy of the whole collection.
func (a *Arena) Snapshot() []Tracer {
	out := make([]Tracer, len(a.xs))
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}
