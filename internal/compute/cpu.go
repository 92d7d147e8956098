package compute

import (
	"runtime"
	"sync"
)

// serialThreshold is the problem size below which goroutine fan-out
// costs more than it saves.
const serialThreshold = 4096

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) HeatStencil(a HeatArgs) {
	if a.Nx*a.Nz < serialThreshold {
		fluxRows(a, 0, a.Nz)
		updateRows(a, 1, a.Nz-1)
		return
	}

	c.parallelRows(a.Nz, func(j0, j1 int) { fluxRows(a, j0, j1) })

	lo, hi := 1, a.Nz-1
	c.parallelRows(hi-lo, func(j0, j1 int) { updateRows(a, lo+j0, lo+j1) })
}

// fluxRows fills the face flux arrays for rows [j0, j1).
func fluxRows(a HeatArgs, j0, j1 int) {
	nx := a.Nx
	for j := j0; j < j1; j++ {
		for i := 0; i < nx-1; i++ {
			f := j*(nx-1) + i
			c := j*nx + i
			a.Qx[f] = -a.Kx[f] * (a.Src[c+1] - a.Src[c]) / a.Dx
		}
		if j < a.Nz-1 {
			for i := 0; i < nx; i++ {
				f := j*nx + i
				a.Qz[f] = -a.Kz[f] * (a.Src[f+nx] - a.Src[f]) / a.Dz
			}
		}
	}
}

// updateRows applies the divergence and latent-heat update to interior
// cells of rows [j0, j1); j0 must be >= 1 and j1 <= Nz-1.
func updateRows(a HeatArgs, j0, j1 int) {
	nx := a.Nx
	for j := j0; j < j1; j++ {
		for i := 1; i < nx-1; i++ {
			c := j*nx + i

			divQ := (a.Qx[j*(nx-1)+i]-a.Qx[j*(nx-1)+i-1])/a.Dx +
				(a.Qz[j*nx+i]-a.Qz[(j-1)*nx+i])/a.Dz

			a.Dst[c] = a.Src[c] -
				a.Dt/(a.Rho[c]*a.Cp[c])*divQ -
				a.Dt*a.Latent/a.Cp[c]*a.DPhiDt[c]
		}
	}
}

func (c *CPUBackend) SampleNearest(a SampleArgs) {
	n := len(a.Xs)
	if n < serialThreshold {
		sampleRange(a, 0, n)
		return
	}
	c.parallelRows(n, func(k0, k1 int) { sampleRange(a, k0, k1) })
}

func sampleRange(a SampleArgs, k0, k1 int) {
	for k := k0; k < k1; k++ {
		i := int(a.Xs[k] / a.Dx)
		j := int(a.Zs[k] / a.Dz)
		if i < 0 {
			i = 0
		} else if i >= a.Nx {
			i = a.Nx - 1
		}
		if j < 0 {
			j = 0
		} else if j >= a.Nz {
			j = a.Nz - 1
		}
		a.Out[k] = a.Field[j*a.Nx+i]
	}
}

// parallelRows splits [0, n) into worker chunks and runs fn on each.
func (c *CPUBackend) parallelRows(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	var wg sync.WaitGroup
	chunk := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		lo := w * chunk
		if lo >= n {
			break
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}

	wg.Wait()
}
