package phase_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"dikesim/internal/phase"
)

var _ = Describe("Model", func() {
	var m *phase.Model

	BeforeEach(func() {
		m = phase.NewModel(1000, 50)
	})

	Describe("MeltFraction", func() {
		It("is bounded in [0,1] for all temperatures", func() {
			for _, t := range []float64{-1e6, -273, 0, 500, 1000, 1500, 1e6} {
				f := m.MeltFraction(t)
				Expect(f).To(BeNumerically(">=", 0))
				Expect(f).To(BeNumerically("<=", 1))
			}
		})

		It("is 0.5 at the midpoint", func() {
			Expect(m.MeltFraction(1000)).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("is monotonically non-decreasing in temperature", func() {
			prev := m.MeltFraction(-500)
			for t := -499.0; t <= 2500; t += 1 {
				f := m.MeltFraction(t)
				Expect(f).To(BeNumerically(">=", prev))
				prev = f
			}
		})

		It("saturates at the extremes", func() {
			Expect(m.MeltFraction(-1e5)).To(BeNumerically("~", 0, 1e-9))
			Expect(m.MeltFraction(1e5)).To(BeNumerically("~", 1, 1e-9))
		})
	})

	Describe("Update", func() {
		It("computes the rate as a backward difference", func() {
			t := []float64{1000}
			phi := []float64{0}
			phiPrev := []float64{0.2}
			rate := []float64{0}

			m.Update(t, phi, phiPrev, rate, 10)

			Expect(phi[0]).To(BeNumerically("~", 0.5, 1e-12))
			Expect(rate[0]).To(BeNumerically("~", (0.5-0.2)/10, 1e-12))
			Expect(phiPrev[0]).To(Equal(phi[0]))
		})

		It("yields zero rate on a repeated call with unchanged temperature", func() {
			t := []float64{800, 1000, 1200}
			phi := make([]float64, 3)
			phiPrev := make([]float64, 3)
			rate := make([]float64, 3)

			m.Update(t, phi, phiPrev, rate, 5)
			m.Update(t, phi, phiPrev, rate, 5)

			for i := range rate {
				Expect(rate[i]).To(BeNumerically("~", 0, 1e-14))
			}
		})
	})

	Describe("Init", func() {
		It("seeds phi and phiPrev consistently", func() {
			t := []float64{600, 1000, 1400}
			phi := make([]float64, 3)
			phiPrev := make([]float64, 3)

			m.Init(t, phi, phiPrev)

			for i := range t {
				Expect(phi[i]).To(Equal(phiPrev[i]))
				Expect(phi[i]).To(Equal(m.MeltFraction(t[i])))
			}
		})
	})
})
