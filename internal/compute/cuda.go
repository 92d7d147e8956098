//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void heat_stencil_gpu(float* src, float* dst, float* kx, float* kz,
    float* rho, float* cp, float* dphidt,
    int nx, int nz, float dx, float dz, float dt, float latent);
*/
import "C"
import "unsafe"

type CUDABackend struct {
	available  bool
	deviceName string
}

func NewCUDABackend() *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) HeatStencil(a HeatArgs) {
	if !c.available {
		NewCPUBackend().HeatStencil(a)
		return
	}

	srcF := toF32(a.Src)
	dstF := make([]float32, len(a.Dst))
	kxF := toF32(a.Kx)
	kzF := toF32(a.Kz)
	rhoF := toF32(a.Rho)
	cpF := toF32(a.Cp)
	rateF := toF32(a.DPhiDt)

	C.heat_stencil_gpu(
		(*C.float)(unsafe.Pointer(&srcF[0])),
		(*C.float)(unsafe.Pointer(&dstF[0])),
		(*C.float)(unsafe.Pointer(&kxF[0])),
		(*C.float)(unsafe.Pointer(&kzF[0])),
		(*C.float)(unsafe.Pointer(&rhoF[0])),
		(*C.float)(unsafe.Pointer(&cpF[0])),
		(*C.float)(unsafe.Pointer(&rateF[0])),
		C.int(a.Nx), C.int(a.Nz),
		C.float(a.Dx), C.float(a.Dz),
		C.float(a.Dt), C.float(a.Latent),
	)

	for i := range a.Dst {
		a.Dst[i] = float64(dstF[i])
	}
}

func (c *CUDABackend) SampleNearest(a SampleArgs) {
	NewCPUBackend().SampleNearest(a)
}

func toF32(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}
