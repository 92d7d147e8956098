// Package export renders field snapshots to standalone files.
package export

import (
	"fmt"
	"os"
	"strings"

	"dikesim/internal/sim"
	"dikesim/internal/tracer"
)

// ramp interpolation anchors, cold to hot, as RGB.
var rampAnchors = [][3]float64{
	{26, 26, 58},
	{42, 85, 153},
	{78, 179, 160},
	{217, 208, 72},
	{239, 106, 50},
	{255, 255, 255},
}

// FieldSVG renders the temperature field as an SVG raster of one rect
// per cell, tracers overlaid as dots. scale is pixels per grid cell.
func FieldSVG(snap sim.FieldSnapshot, tracers []tracer.Tracer, scale float64) string {
	if snap.Nx == 0 || snap.Nz == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 4
	}

	width := float64(snap.Nx) * scale
	height := float64(snap.Nz) * scale

	lo, hi := snap.T[0], snap.T[0]
	for _, v := range snap.T {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, width, height, width, height))

	for j := 0; j < snap.Nz; j++ {
		for i := 0; i < snap.Nx; i++ {
			v := (snap.T[j*snap.Nx+i] - lo) / span
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*scale, float64(j)*scale, scale, scale, rampColor(v)))
		}
	}

	if len(tracers) > 0 && snap.Nx > 0 {
		// Cell size in physical units recovers pixel positions.
		dx := snap.X[0] * 2
		dz := snap.Z[0] * 2
		sb.WriteString(`<g fill="#000000" fill-opacity="0.6">` + "\n")
		for _, tr := range tracers {
			if !tr.Active {
				continue
			}
			cx := tr.X / dx * scale
			cy := tr.Z / dz * scale
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, scale*0.3))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG renders the snapshot to path.
func WriteSVG(path string, snap sim.FieldSnapshot, tracers []tracer.Tracer, scale float64) error {
	return os.WriteFile(path, []byte(FieldSVG(snap, tracers, scale)), 0644)
}

// rampColor interpolates the anchors for a normalized value in [0,1].
func rampColor(v float64) string {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	pos := v * float64(len(rampAnchors)-1)
	idx := int(pos)
	if idx >= len(rampAnchors)-1 {
		idx = len(rampAnchors) - 2
	}
	frac := pos - float64(idx)

	a, b := rampAnchors[idx], rampAnchors[idx+1]
	r := a[0] + (b[0]-a[0])*frac
	g := a[1] + (b[1]-a[1])*frac
	bl := a[2] + (b[2]-a[2])*frac
	return fmt.Sprintf("#%02x%02x%02x", int(r), int(g), int(bl))
}
