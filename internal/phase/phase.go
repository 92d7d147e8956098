// Package phase provides the melt-fraction closure coupling temperature
// to the latent-heat source term.
//
// The convention throughout is melt fraction: 0 is fully solid, 1 is
// fully molten, and the fraction is non-decreasing in temperature.
package phase

import "math"

// Model is a logistic melt-fraction closure with two calibration
// constants: the midpoint temperature (where the fraction is 0.5) and
// a transition width.
type Model struct {
	Midpoint float64
	Width    float64
}

// NewModel returns a closure calibrated at the given midpoint
// temperature and transition width.
func NewModel(midpoint, width float64) *Model {
	if width <= 0 {
		width = 1
	}
	return &Model{Midpoint: midpoint, Width: width}
}

// MeltFraction evaluates the closure at one temperature. Defined for
// all reals; saturates to 0 and 1 at the extremes.
func (m *Model) MeltFraction(t float64) float64 {
	return 1.0 / (1.0 + math.Exp(-(t-m.Midpoint)/m.Width))
}

// Init seeds phi and phiPrev from an initial temperature field so the
// first step sees no spurious phase-change transient.
func (m *Model) Init(t, phi, phiPrev []float64) {
	for i := range t {
		p := m.MeltFraction(t[i])
		phi[i] = p
		phiPrev[i] = p
	}
}

// Update recomputes phi for every cell from the current temperature,
// then the rate dPhi/dt as a first-order backward difference against
// phiPrev before phiPrev is overwritten with the new phi. The rate
// inherits whatever dt the most recent step used; a repeated call with
// unchanged temperature therefore yields a zero rate.
func (m *Model) Update(t, phi, phiPrev, dPhiDt []float64, dt float64) {
	for i := range t {
		p := m.MeltFraction(t[i])
		dPhiDt[i] = (p - phiPrev[i]) / dt
		phi[i] = p
		phiPrev[i] = p
	}
}
