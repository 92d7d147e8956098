package sim

import (
	"dikesim/internal/field"
	"dikesim/internal/intrusion"
	"dikesim/internal/tracer"
)

// Metric accumulates a scalar over the run from field snapshots.
type Metric interface {
	Name() string
	Observe(f *field.Fields, tSec float64)
	Value() float64
	Reset()
}

// Observer receives the per-step record.
type Observer interface {
	OnStep(rec StepRecord)
}

// StepRecord is the structured per-step log record handed to
// observers. Dike is nil on steps without an intrusion event.
type StepRecord struct {
	Step           int
	TimeYears      float64
	TimeKyr        float64
	Dike           *intrusion.Dike
	InjectedVolume float64 // running total, m3
}

// FieldSnapshot is a detached copy of the visible field state.
type FieldSnapshot struct {
	Nx, Nz int
	X, Z   []float64
	T      []float64
	Phi    []float64
}

// Result summarizes a finished run.
type Result struct {
	Steps          int
	ElapsedYears   float64
	ElapsedKyr     float64
	Intrusions     int
	InjectedVolume float64
	InjectionRate  float64 // m3 per year
	TracerCount    int
	Metrics        map[string]float64
	Final          FieldSnapshot
	Tracers        []tracer.Tracer
}
