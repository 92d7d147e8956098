// Package metrics provides per-run scalar diagnostics computed from
// field snapshots.
package metrics

import (
	"dikesim/internal/field"
	"dikesim/internal/grid"
	"dikesim/internal/intrusion"
)

// ThermalEnergy tracks the interior heat content sum(rho*cp*T*V) over
// the cells between the Dirichlet rows, reporting the latest value.
type ThermalEnergy struct {
	grid    *grid.Grid
	current float64
	samples int
}

func NewThermalEnergy(g *grid.Grid) *ThermalEnergy {
	return &ThermalEnergy{grid: g}
}

func (e *ThermalEnergy) Name() string { return "thermal_energy" }

func (e *ThermalEnergy) Observe(f *field.Fields, t float64) {
	g := e.grid
	cellVol := g.CellArea() * intrusion.UnitDepth

	total := 0.0
	for j := 1; j < g.Nz-1; j++ {
		for i := 1; i < g.Nx-1; i++ {
			c := g.Index(i, j)
			total += f.Rho[c] * f.Cp[c] * f.T[c] * cellVol
		}
	}
	e.current = total
	e.samples++
}

func (e *ThermalEnergy) Value() float64 { return e.current }

func (e *ThermalEnergy) Reset() {
	e.current = 0
	e.samples = 0
}

// MeltVolume tracks the latest molten volume sum(phi*V).
type MeltVolume struct {
	grid    *grid.Grid
	current float64
}

func NewMeltVolume(g *grid.Grid) *MeltVolume {
	return &MeltVolume{grid: g}
}

func (m *MeltVolume) Name() string { return "melt_volume" }

func (m *MeltVolume) Observe(f *field.Fields, t float64) {
	cellVol := m.grid.CellArea() * intrusion.UnitDepth
	total := 0.0
	for _, phi := range f.Phi {
		total += phi * cellVol
	}
	m.current = total
}

func (m *MeltVolume) Value() float64 { return m.current }
func (m *MeltVolume) Reset()         { m.current = 0 }

// MaxTemperature tracks the hottest cell seen over the whole run.
type MaxTemperature struct {
	max      float64
	observed bool
}

func NewMaxTemperature() *MaxTemperature {
	return &MaxTemperature{}
}

func (m *MaxTemperature) Name() string { return "max_temperature" }

func (m *MaxTemperature) Observe(f *field.Fields, t float64) {
	for _, v := range f.T {
		if !m.observed || v > m.max {
			m.max = v
			m.observed = true
		}
	}
}

func (m *MaxTemperature) Value() float64 { return m.max }

func (m *MaxTemperature) Reset() {
	m.max = 0
	m.observed = false
}
