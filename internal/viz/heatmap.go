// Package viz renders field snapshots for the terminal. It consumes
// only read-only snapshots; nothing here touches the simulation.
package viz

import (
	"fmt"
	"strings"

	"dikesim/internal/sim"
	"dikesim/internal/tracer"
)

// shades order cold to hot, reused across the ramp for text-only output.
var shades = []rune(" .:-=+*#%@@")

// Heatmap renders the temperature field into a cols x rows character
// grid, averaging grid cells into character cells and coloring by the
// ramp. Tracer markers overlay their nearest character cell.
func Heatmap(snap sim.FieldSnapshot, cols, rows int, tracers []tracer.Tracer) string {
	if cols < 1 || rows < 1 || snap.Nx == 0 || snap.Nz == 0 {
		return ""
	}
	if cols > snap.Nx {
		cols = snap.Nx
	}
	if rows > snap.Nz {
		rows = snap.Nz
	}

	lo, hi := bounds(snap.T)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	// Average field cells into character cells.
	avg := make([]float64, cols*rows)
	cnt := make([]int, cols*rows)
	for j := 0; j < snap.Nz; j++ {
		rj := j * rows / snap.Nz
		for i := 0; i < snap.Nx; i++ {
			ci := i * cols / snap.Nx
			avg[rj*cols+ci] += snap.T[j*snap.Nx+i]
			cnt[rj*cols+ci]++
		}
	}
	for k := range avg {
		if cnt[k] > 0 {
			avg[k] /= float64(cnt[k])
		}
	}

	marks := make(map[int]bool)
	if len(snap.X) > 0 && len(snap.Z) > 0 {
		w := snap.X[snap.Nx-1] + snap.X[0]
		d := snap.Z[snap.Nz-1] + snap.Z[0]
		for _, tr := range tracers {
			if !tr.Active {
				continue
			}
			ci := int(tr.X / w * float64(cols))
			rj := int(tr.Z / d * float64(rows))
			if ci >= 0 && ci < cols && rj >= 0 && rj < rows {
				marks[rj*cols+ci] = true
			}
		}
	}

	var b strings.Builder
	for rj := 0; rj < rows; rj++ {
		for ci := 0; ci < cols; ci++ {
			k := rj*cols + ci
			v := (avg[k] - lo) / span
			ch := shades[int(v*float64(len(shades)-1))]
			if marks[k] {
				ch = '•'
			}
			b.WriteString(HeatStyle(v).Render(string(ch)))
		}
		b.WriteByte('\n')
	}

	b.WriteString(Subtle.Render(fmt.Sprintf("T: %.0f .. %.0f", lo, hi)))
	b.WriteByte('\n')
	return b.String()
}

func bounds(vals []float64) (lo, hi float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// MeanTemperature reduces a snapshot to one scalar for history plots.
func MeanTemperature(snap sim.FieldSnapshot) float64 {
	if len(snap.T) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range snap.T {
		sum += v
	}
	return sum / float64(len(snap.T))
}
