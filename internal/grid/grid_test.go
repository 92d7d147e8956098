package grid

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	g, err := New(10, 20, 0.5, 0.25)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if g.Cells() != 200 {
		t.Errorf("expected 200 cells, got %d", g.Cells())
	}
	if math.Abs(g.X[0]-0.25) > 1e-12 {
		t.Errorf("expected first x center 0.25, got %f", g.X[0])
	}
	if math.Abs(g.Z[19]-4.875) > 1e-12 {
		t.Errorf("expected last z center 4.875, got %f", g.Z[19])
	}
	if math.Abs(g.Width()-5.0) > 1e-12 {
		t.Errorf("expected width 5, got %f", g.Width())
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name   string
		nx, nz int
		dx, dz float64
	}{
		{"nx too small", 2, 10, 1, 1},
		{"nz too small", 10, 2, 1, 1},
		{"zero dx", 10, 10, 0, 1},
		{"negative dz", 10, 10, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.nx, tt.nz, tt.dx, tt.dz); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestIndex(t *testing.T) {
	g, _ := New(4, 3, 1, 1)

	if g.Index(0, 0) != 0 {
		t.Errorf("expected 0, got %d", g.Index(0, 0))
	}
	if g.Index(3, 2) != 11 {
		t.Errorf("expected 11, got %d", g.Index(3, 2))
	}
	if g.Index(1, 2) != 9 {
		t.Errorf("expected 9, got %d", g.Index(1, 2))
	}
}

func TestNearestCell(t *testing.T) {
	g, _ := New(10, 10, 1, 1)

	tests := []struct {
		name    string
		x, z    float64
		wi, wj  int
	}{
		{"interior", 4.5, 7.5, 4, 7},
		{"origin", 0.1, 0.1, 0, 0},
		{"clamp low", -5, -5, 0, 0},
		{"clamp high", 100, 100, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j := g.NearestCell(tt.x, tt.z)
			if i != tt.wi || j != tt.wj {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.wi, tt.wj, i, j)
			}
		})
	}
}

func TestContains(t *testing.T) {
	g, _ := New(10, 5, 1, 2)

	if !g.Contains(5, 5) {
		t.Error("interior point should be contained")
	}
	if g.Contains(-0.1, 5) || g.Contains(5, 10.1) {
		t.Error("exterior point should not be contained")
	}
}
