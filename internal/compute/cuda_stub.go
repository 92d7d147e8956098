//go:build !cuda

package compute

type CUDABackend struct{}

func NewCUDABackend() *CUDABackend {
	return &CUDABackend{}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) HeatStencil(a HeatArgs) {
	NewCPUBackend().HeatStencil(a)
}

func (c *CUDABackend) SampleNearest(a SampleArgs) {
	NewCPUBackend().SampleNearest(a)
}
