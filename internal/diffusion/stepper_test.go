package diffusion

import (
	"math"
	"testing"

	"dikesim/internal/compute"
	"dikesim/internal/field"
	"dikesim/internal/grid"
)

var testMat = Material{
	KRock:  3.0,
	KMagma: 1.5,
	Rho:    2800,
	Cp:     1000,
	Latent: 4e5,
}

func newTestFields(t *testing.T, nx, nz int, h float64) (*grid.Grid, *field.Fields) {
	t.Helper()
	g, err := grid.New(nx, nz, h, h)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	f := field.New(g)
	field.SetUniform(f.Rho, testMat.Rho)
	field.SetUniform(f.Cp, testMat.Cp)
	return g, f
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name string
		mat  Material
		ok   bool
	}{
		{"valid", testMat, true},
		{"zero conductivity", Material{KRock: 0, KMagma: 1, Rho: 1, Cp: 1}, false},
		{"negative rho", Material{KRock: 1, KMagma: 1, Rho: -1, Cp: 1}, false},
		{"negative latent", Material{KRock: 1, KMagma: 1, Rho: 1, Cp: 1, Latent: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mat.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStableDt(t *testing.T) {
	g, _ := grid.New(10, 10, 2, 3)

	// min spacing wins: dx=2 -> 4 / kappa / 20
	kappa := testMat.Diffusivity()
	want := 4.0 / kappa / 20.0
	got := StableDt(g, testMat, 20)
	if math.Abs(got-want) > want*1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}

	if err := ValidateDt(g, testMat, got, 20); err != nil {
		t.Errorf("bound dt should validate: %v", err)
	}
	if err := ValidateDt(g, testMat, got*2, 20); err == nil {
		t.Error("dt above bound should be rejected")
	}
	if err := ValidateDt(g, testMat, 0, 20); err == nil {
		t.Error("zero dt should be rejected")
	}
}

func TestUpdateConductivityBlend(t *testing.T) {
	g, f := newTestFields(t, 4, 4, 1)
	s := NewStepper(g, testMat, Boundary{}, compute.NewCPUBackend())

	// fully solid
	s.UpdateConductivity(f)
	if f.K[0] != testMat.KRock {
		t.Errorf("solid cell should have rock conductivity, got %g", f.K[0])
	}

	// fully molten
	field.SetUniform(f.Phi, 1)
	s.UpdateConductivity(f)
	if f.K[0] != testMat.KMagma {
		t.Errorf("molten cell should have magma conductivity, got %g", f.K[0])
	}

	// half melt blends halfway, faces average neighbors
	field.SetUniform(f.Phi, 0)
	f.Phi[g.Index(1, 1)] = 1
	s.UpdateConductivity(f)
	wantFace := 0.5 * (testMat.KRock + testMat.KMagma)
	got := f.Kx[1*(g.Nx-1)+0] // face between (0,1) and (1,1)
	if math.Abs(got-wantFace) > 1e-12 {
		t.Errorf("expected face conductivity %g, got %g", wantFace, got)
	}
}

func TestApplyBoundaries(t *testing.T) {
	g, f := newTestFields(t, 5, 5, 1)
	s := NewStepper(g, testMat, Boundary{Top: 0, Bottom: 100}, compute.NewCPUBackend())

	field.SetUniform(f.T, 42)
	s.ApplyBoundaries(f.T)

	for i := 0; i < 5; i++ {
		if f.T[i] != 0 {
			t.Errorf("top row cell %d: expected 0, got %g", i, f.T[i])
		}
		if f.T[4*5+i] != 100 {
			t.Errorf("bottom row cell %d: expected 100, got %g", i, f.T[4*5+i])
		}
	}
	for j := 1; j < 4; j++ {
		if f.T[j*5] != f.T[j*5+1] {
			t.Errorf("row %d: lateral boundary not zero-gradient", j)
		}
	}
}

func TestStepConservesInteriorEnergy(t *testing.T) {
	// A centered hot blob, no latent heat, and too few steps for the
	// disturbance to reach any boundary: the divergence form must
	// conserve the interior energy sum exactly up to rounding.
	mat := testMat
	mat.Latent = 0

	g, f := newTestFields(t, 21, 21, 1)
	s := NewStepper(g, mat, Boundary{Top: 10, Bottom: 10}, compute.NewCPUBackend())

	field.SetUniform(f.T, 10)
	f.T[g.Index(10, 10)] = 500

	s.UpdateConductivity(f)
	dt := StableDt(g, mat, 20)

	sumEnergy := func(tt []float64) float64 {
		total := 0.0
		for j := 1; j < g.Nz-1; j++ {
			for i := 1; i < g.Nx-1; i++ {
				c := g.Index(i, j)
				total += f.Rho[c] * f.Cp[c] * tt[c]
			}
		}
		return total
	}

	before := sumEnergy(f.T)
	for n := 0; n < 5; n++ {
		s.Step(f, dt)
		s.ApplyBoundaries(f.TWork)
		f.SwapT()
	}
	after := sumEnergy(f.T)

	if math.Abs(after-before) > math.Abs(before)*1e-10 {
		t.Errorf("interior energy drifted: before %g, after %g", before, after)
	}
}

func TestStepSteadyStateLinearProfile(t *testing.T) {
	// 10x10 grid, top held at 0, bottom at 100, no lateral flux:
	// near steady state the interior approaches the linear conductive
	// profile between the two Dirichlet rows.
	mat := testMat
	mat.Latent = 0

	g, f := newTestFields(t, 10, 10, 1)
	s := NewStepper(g, mat, Boundary{Top: 0, Bottom: 100}, compute.NewCPUBackend())

	s.UpdateConductivity(f)
	s.ApplyBoundaries(f.T)
	dt := StableDt(g, mat, 20)

	for n := 0; n < 60000; n++ {
		s.Step(f, dt)
		s.ApplyBoundaries(f.TWork)
		f.SwapT()
	}

	for j := 0; j < g.Nz; j++ {
		want := 100 * float64(j) / float64(g.Nz-1)
		got := f.T[g.Index(4, j)]
		if math.Abs(got-want) > 0.5 {
			t.Errorf("row %d: expected ~%g, got %g", j, want, got)
		}
	}
}

func TestStepDoesNotTouchCurrentBuffer(t *testing.T) {
	g, f := newTestFields(t, 6, 6, 1)
	s := NewStepper(g, testMat, Boundary{}, compute.NewCPUBackend())

	for c := range f.T {
		f.T[c] = float64(c)
	}
	snap := f.TemperatureSnapshot()

	s.UpdateConductivity(f)
	s.Step(f, StableDt(g, testMat, 20))

	for c := range f.T {
		if f.T[c] != snap[c] {
			t.Fatalf("cell %d of the read buffer was mutated", c)
		}
	}
}
