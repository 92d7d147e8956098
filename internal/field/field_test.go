package field

import (
	"testing"

	"dikesim/internal/grid"
)

func TestNewSizes(t *testing.T) {
	g, _ := grid.New(5, 4, 1, 1)
	f := New(g)

	if len(f.T) != 20 || len(f.TWork) != 20 || len(f.Phi) != 20 {
		t.Errorf("cell arrays mis-sized: T=%d TWork=%d Phi=%d", len(f.T), len(f.TWork), len(f.Phi))
	}
	if len(f.Kx) != 16 || len(f.Qx) != 16 {
		t.Errorf("x-face arrays mis-sized: Kx=%d Qx=%d", len(f.Kx), len(f.Qx))
	}
	if len(f.Kz) != 15 || len(f.Qz) != 15 {
		t.Errorf("z-face arrays mis-sized: Kz=%d Qz=%d", len(f.Kz), len(f.Qz))
	}
}

func TestSwapT(t *testing.T) {
	g, _ := grid.New(3, 3, 1, 1)
	f := New(g)

	f.T[0] = 1.0
	f.TWork[0] = 2.0

	f.SwapT()

	if f.T[0] != 2.0 || f.TWork[0] != 1.0 {
		t.Errorf("swap failed: T[0]=%f TWork[0]=%f", f.T[0], f.TWork[0])
	}

	// Swap must exchange ownership, not copy.
	f.T[0] = 9.0
	if f.TWork[0] == 9.0 {
		t.Error("buffers alias after swap")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g, _ := grid.New(3, 3, 1, 1)
	f := New(g)

	f.T[4] = 42.0
	snap := f.TemperatureSnapshot()
	f.T[4] = 0

	if snap[4] != 42.0 {
		t.Errorf("snapshot should be detached, got %f", snap[4])
	}
}

func TestSetUniform(t *testing.T) {
	g, _ := grid.New(3, 3, 1, 1)
	f := New(g)

	SetUniform(f.Rho, 2800)
	for i, v := range f.Rho {
		if v != 2800 {
			t.Fatalf("cell %d not set, got %f", i, v)
		}
	}
}
