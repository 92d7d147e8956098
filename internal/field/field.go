// Package field owns the per-cell simulation state arrays.
package field

import "dikesim/internal/grid"

// Fields holds every mutable per-cell and per-face array for one run.
// Cell-centered arrays are flat row-major (idx = j*Nx + i). Face arrays
// sit between adjacent cell centers: Kx/Qx on x-faces ((Nx-1)*Nz),
// Kz/Qz on z-faces (Nx*(Nz-1)).
type Fields struct {
	grid *grid.Grid

	// Cell-centered.
	T       []float64 // temperature
	TWork   []float64 // scratch temperature for the stencil pass
	Rho     []float64 // density
	Cp      []float64 // heat capacity
	Phi     []float64 // melt fraction
	PhiPrev []float64
	DPhiDt  []float64
	K       []float64 // effective conductivity

	// Face-centered.
	Kx []float64
	Kz []float64
	Qx []float64
	Qz []float64
}

// New allocates all arrays sized for g, zero-initialized.
func New(g *grid.Grid) *Fields {
	n := g.Cells()
	nxFaces := (g.Nx - 1) * g.Nz
	nzFaces := g.Nx * (g.Nz - 1)

	return &Fields{
		grid:    g,
		T:       make([]float64, n),
		TWork:   make([]float64, n),
		Rho:     make([]float64, n),
		Cp:      make([]float64, n),
		Phi:     make([]float64, n),
		PhiPrev: make([]float64, n),
		DPhiDt:  make([]float64, n),
		K:       make([]float64, n),
		Kx:      make([]float64, nxFaces),
		Kz:      make([]float64, nzFaces),
		Qx:      make([]float64, nxFaces),
		Qz:      make([]float64, nzFaces),
	}
}

// Grid returns the mesh the fields are sized for.
func (f *Fields) Grid() *grid.Grid { return f.grid }

// SwapT exchanges the current and scratch temperature buffers without
// copying. The stencil pass reads T and writes TWork; after the swap
// the freshly computed values become current.
func (f *Fields) SwapT() {
	f.T, f.TWork = f.TWork, f.T
}

// SetUniform fills a cell-centered array with one value.
func SetUniform(a []float64, v float64) {
	for i := range a {
		a[i] = v
	}
}

// TemperatureSnapshot returns a copy of the current temperature field.
func (f *Fields) TemperatureSnapshot() []float64 {
	s := make([]float64, len(f.T))
	copy(s, f.T)
	return s
}

// PhiSnapshot returns a copy of the current melt-fraction field.
func (f *Fields) PhiSnapshot() []float64 {
	s := make([]float64, len(f.Phi))
	copy(s, f.Phi)
	return s
}
