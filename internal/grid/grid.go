// Package grid defines the regular 2D mesh the simulation runs on.
package grid

import "fmt"

// MinCells is the smallest grid extent per axis; the interior stencil
// needs at least one cell with neighbors on both sides.
const MinCells = 3

// Grid is an immutable regular mesh of cell centers. X runs laterally,
// Z runs downward as depth. Spacing is uniform per axis.
type Grid struct {
	Nx, Nz int
	Dx, Dz float64
	X      []float64
	Z      []float64
}

// New builds a grid of nx by nz cells with spacing dx, dz.
func New(nx, nz int, dx, dz float64) (*Grid, error) {
	if nx < MinCells || nz < MinCells {
		return nil, fmt.Errorf("grid: dimensions %dx%d below minimum %d per axis", nx, nz, MinCells)
	}
	if dx <= 0 || dz <= 0 {
		return nil, fmt.Errorf("grid: spacing must be positive, got dx=%g dz=%g", dx, dz)
	}

	g := &Grid{
		Nx: nx,
		Nz: nz,
		Dx: dx,
		Dz: dz,
		X:  make([]float64, nx),
		Z:  make([]float64, nz),
	}
	for i := 0; i < nx; i++ {
		g.X[i] = (float64(i) + 0.5) * dx
	}
	for j := 0; j < nz; j++ {
		g.Z[j] = (float64(j) + 0.5) * dz
	}
	return g, nil
}

// Cells returns the total cell count.
func (g *Grid) Cells() int { return g.Nx * g.Nz }

// Index maps cell coordinates to the flat row-major offset.
func (g *Grid) Index(i, j int) int { return j*g.Nx + i }

// Width returns the lateral physical extent.
func (g *Grid) Width() float64 { return float64(g.Nx) * g.Dx }

// Depth returns the vertical physical extent.
func (g *Grid) Depth() float64 { return float64(g.Nz) * g.Dz }

// CellArea returns the area of one cell.
func (g *Grid) CellArea() float64 { return g.Dx * g.Dz }

// NearestCell returns the indices of the cell whose center is closest
// to the physical point (x, z), clamped to the domain.
func (g *Grid) NearestCell(x, z float64) (int, int) {
	i := int(x / g.Dx)
	j := int(z / g.Dz)
	if i < 0 {
		i = 0
	} else if i >= g.Nx {
		i = g.Nx - 1
	}
	if j < 0 {
		j = 0
	} else if j >= g.Nz {
		j = g.Nz - 1
	}
	return i, j
}

// Contains reports whether the physical point lies inside the domain.
func (g *Grid) Contains(x, z float64) bool {
	return x >= 0 && x <= g.Width() && z >= 0 && z <= g.Depth()
}
