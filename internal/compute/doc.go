// Package compute provides execution backends for the grid kernels.
//
// Two kernels cover the hot loop: the 5-point heat stencil writing into
// a scratch buffer, and bulk nearest-cell field sampling for tracer
// updates. The CPU backend parallelizes both across rows; small
// problems run serially.
//
// A CUDA backend exists behind the cuda build tag and is preferred by
// AutoSelect when a device is present:
//
//	backend := compute.AutoSelect()
//	backend.HeatStencil(args)
package compute
