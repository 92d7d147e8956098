package compute

// HeatArgs carries one explicit heat step: fluxes are computed on the
// faces from Src and the face conductivities, then the interior cells
// of Dst receive the divergence and latent-heat update. Src and Dst
// must be distinct buffers; boundary cells of Dst are left for the
// caller's boundary pass.
type HeatArgs struct {
	Nx, Nz int
	Dx, Dz float64
	Dt     float64

	Src, Dst []float64
	Kx, Kz   []float64
	Qx, Qz   []float64
	Rho, Cp  []float64
	DPhiDt   []float64
	Latent   float64
}

// SampleArgs carries a bulk nearest-cell sampling request: Out[k]
// receives the Field value of the cell closest to (Xs[k], Zs[k]),
// positions clamped to the domain.
type SampleArgs struct {
	Xs, Zs []float64
	Nx, Nz int
	Dx, Dz float64
	Field  []float64
	Out    []float64
}

type Backend interface {
	Name() string
	Available() bool
	HeatStencil(a HeatArgs)
	SampleNearest(a SampleArgs)
	Cleanup()
}

// AutoSelect returns the best available backend (CUDA if built in and
// a device is present, else CPU).
func AutoSelect() Backend {
	cuda := NewCUDABackend()
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend()
}
