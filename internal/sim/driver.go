// Package sim orchestrates the fixed-dt intrusion and diffusion loop.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"

	"dikesim/internal/compute"
	"dikesim/internal/diffusion"
	"dikesim/internal/field"
	"dikesim/internal/grid"
	"dikesim/internal/intrusion"
	"dikesim/internal/phase"
	"dikesim/internal/tracer"
)

// Options assembles one run. Zero-value Dt derives the step from the
// stability bound; a non-zero Dt is validated against it.
type Options struct {
	Grid      *grid.Grid
	Material  diffusion.Material
	Boundary  diffusion.Boundary
	Phase     *phase.Model
	Intrusion intrusion.Params

	MaxTime float64 // seconds
	Dt      float64 // seconds; 0 derives from the stability bound
	Safety  float64 // stability margin; 0 means the default

	Seed           int64
	TracersPerDike int

	// InitialTemp sets the starting temperature at a cell center.
	// Nil means the linear geotherm between the boundary rows.
	InitialTemp func(x, z float64) float64

	Backend compute.Backend
	Log     *logrus.Logger
}

// Driver owns every component of a run and advances them in lockstep.
// It is not safe for concurrent use; parallel runs get their own
// Driver each (see Ensemble).
type Driver struct {
	grid    *grid.Grid
	fields  *field.Fields
	stepper *diffusion.Stepper
	phase   *phase.Model
	engine  *intrusion.Engine
	tracers *tracer.Arena

	rng *rand.Rand
	log *logrus.Logger

	dt        float64
	steps     int
	perDike   int
	clock     Clock
	injected  float64
	observers []Observer
	metrics   []Metric
}

// NewDriver validates the options and builds a ready-to-run driver.
// All validation failures are fatal configuration errors.
func NewDriver(o Options) (*Driver, error) {
	if o.Grid == nil {
		return nil, fmt.Errorf("%w: grid is required", ErrConfiguration)
	}
	if err := o.Material.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := o.Intrusion.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if o.MaxTime <= 0 {
		return nil, fmt.Errorf("%w: max time must be positive, got %g", ErrConfiguration, o.MaxTime)
	}
	if o.TracersPerDike < 0 {
		return nil, fmt.Errorf("%w: tracers per dike must be non-negative, got %d", ErrConfiguration, o.TracersPerDike)
	}
	if o.Phase == nil {
		return nil, fmt.Errorf("%w: phase model is required", ErrConfiguration)
	}

	safety := o.Safety
	if safety == 0 {
		safety = diffusion.DefaultSafetyFactor
	}

	dt := o.Dt
	if dt == 0 {
		dt = diffusion.StableDt(o.Grid, o.Material, safety)
	} else if err := diffusion.ValidateDt(o.Grid, o.Material, dt, safety); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStability, err)
	}

	backend := o.Backend
	if backend == nil {
		backend = compute.AutoSelect()
	}

	log := o.Log
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	g := o.Grid
	f := field.New(g)
	field.SetUniform(f.Rho, o.Material.Rho)
	field.SetUniform(f.Cp, o.Material.Cp)

	initial := o.InitialTemp
	if initial == nil {
		depth := g.Depth()
		top, bottom := o.Boundary.Top, o.Boundary.Bottom
		initial = func(_, z float64) float64 {
			return top + (bottom-top)*z/depth
		}
	}
	for j := 0; j < g.Nz; j++ {
		for i := 0; i < g.Nx; i++ {
			f.T[g.Index(i, j)] = initial(g.X[i], g.Z[j])
		}
	}

	stepper := diffusion.NewStepper(g, o.Material, o.Boundary, backend)
	stepper.ApplyBoundaries(f.T)
	o.Phase.Init(f.T, f.Phi, f.PhiPrev)
	stepper.UpdateConductivity(f)

	rng := rand.New(rand.NewSource(o.Seed))

	return &Driver{
		grid:    g,
		fields:  f,
		stepper: stepper,
		phase:   o.Phase,
		engine:  intrusion.NewEngine(o.Intrusion, rng),
		tracers: tracer.NewArena(backend),
		rng:     rng,
		log:     log,
		dt:      dt,
		steps:   int(o.MaxTime / dt),
		perDike: o.TracersPerDike,
	}, nil
}

func (d *Driver) AddMetric(m Metric)      { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(ob Observer) { d.observers = append(d.observers, ob) }

// Dt returns the step size in seconds.
func (d *Driver) Dt() float64 { return d.dt }

// PlannedSteps returns the precomputed step count for the run.
func (d *Driver) PlannedSteps() int { return d.steps }

// Clock returns the current simulation clock.
func (d *Driver) Clock() Clock { return d.clock }

// InjectedVolume returns the cumulative volume of emplaced magma, m3.
func (d *Driver) InjectedVolume() float64 { return d.injected }

// InjectionRate returns the mean emplacement rate in m3 per year.
func (d *Driver) InjectionRate() float64 {
	years := d.clock.Years()
	if years == 0 {
		return 0
	}
	return d.injected / years
}

// Snapshot returns a detached copy of the visible field state.
func (d *Driver) Snapshot() FieldSnapshot {
	x := make([]float64, len(d.grid.X))
	z := make([]float64, len(d.grid.Z))
	copy(x, d.grid.X)
	copy(z, d.grid.Z)
	return FieldSnapshot{
		Nx: d.grid.Nx, Nz: d.grid.Nz,
		X: x, Z: z,
		T:   d.fields.TemperatureSnapshot(),
		Phi: d.fields.PhiSnapshot(),
	}
}

// TracerSnapshot returns a detached copy of the marker collection.
func (d *Driver) TracerSnapshot() []tracer.Tracer { return d.tracers.Snapshot() }

// Step advances the simulation by one dt. The sequence is fixed:
// intrusion window, phase closure, conductivity, stencil into the
// scratch buffer, boundary pass, buffer swap, tracer refresh against
// the new temperature, clock advance.
func (d *Driver) Step() (StepRecord, error) {
	f := d.fields
	rec := StepRecord{Step: d.clock.Steps}

	if dike := d.engine.MaybeInject(d.clock.Sec); dike != nil {
		vol, err := d.engine.Inject(f, d.grid, dike)
		if err != nil {
			if errors.Is(err, intrusion.ErrOutsideDomain) {
				return rec, fmt.Errorf("%w: %v", ErrGeometry, err)
			}
			return rec, err
		}
		d.injected += vol
		d.tracers.InsertBatch(d.rng, dike, d.perDike)
		rec.Dike = dike

		d.log.WithFields(logrus.Fields{
			"step":   d.clock.Steps,
			"t_kyr":  d.clock.Kyr(),
			"x":      dike.CenterX,
			"z":      dike.CenterZ,
			"angle":  dike.Angle,
			"shape":  dike.Shape.String(),
			"volume": vol,
			"total":  d.injected,
		}).Info("dike emplaced")
	}

	d.phase.Update(f.T, f.Phi, f.PhiPrev, f.DPhiDt, d.dt)
	d.stepper.UpdateConductivity(f)
	d.stepper.Step(f, d.dt)
	d.stepper.ApplyBoundaries(f.TWork)
	f.SwapT()
	d.tracers.Update(f, d.grid)

	d.clock.Sec += d.dt
	d.clock.Steps++

	rec.TimeYears = d.clock.Years()
	rec.TimeKyr = d.clock.Kyr()
	rec.InjectedVolume = d.injected

	for _, m := range d.metrics {
		m.Observe(f, d.clock.Sec)
	}
	for _, ob := range d.observers {
		ob.OnStep(rec)
	}

	d.log.WithFields(logrus.Fields{
		"step":  rec.Step,
		"t_kyr": rec.TimeKyr,
	}).Debug("step complete")

	return rec, nil
}

// Run executes the whole precomputed step count. The loop is bounded
// and deterministic; ctx lets a caller abandon a long run early.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	for _, m := range d.metrics {
		m.Reset()
	}

	for i := 0; i < d.steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if _, err := d.Step(); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Steps:          d.clock.Steps,
		ElapsedYears:   d.clock.Years(),
		ElapsedKyr:     d.clock.Kyr(),
		Intrusions:     d.engine.Fired(),
		InjectedVolume: d.injected,
		InjectionRate:  d.InjectionRate(),
		TracerCount:    d.tracers.Len(),
		Metrics:        make(map[string]float64, len(d.metrics)),
		Final:          d.Snapshot(),
		Tracers:        d.TracerSnapshot(),
	}
	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
