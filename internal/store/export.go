package store

import (
	"encoding/json"
	"io"
	"os"

	"dikesim/internal/sim"
)

// ExportData is the full-result JSON shape for external tooling.
type ExportData struct {
	Seed           int64              `json:"seed"`
	Steps          int                `json:"steps"`
	ElapsedKyr     float64            `json:"elapsed_kyr"`
	Intrusions     int                `json:"intrusions"`
	InjectedVolume float64            `json:"injected_volume"`
	InjectionRate  float64            `json:"injection_rate"`
	Metrics        map[string]float64 `json:"metrics"`
	Nx             int                `json:"nx"`
	Nz             int                `json:"nz"`
	X              []float64          `json:"x"`
	Z              []float64          `json:"z"`
	Temperature    []float64          `json:"temperature"`
	Phi            []float64          `json:"phi"`
	Tracers        []TracerRecord     `json:"tracers"`
}

type TracerRecord struct {
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Temp float64 `json:"temp"`
	Phi  float64 `json:"phi"`
}

func buildExport(seed int64, result *sim.Result) ExportData {
	data := ExportData{
		Seed:           seed,
		Steps:          result.Steps,
		ElapsedKyr:     result.ElapsedKyr,
		Intrusions:     result.Intrusions,
		InjectedVolume: result.InjectedVolume,
		InjectionRate:  result.InjectionRate,
		Metrics:        result.Metrics,
		Nx:             result.Final.Nx,
		Nz:             result.Final.Nz,
		X:              result.Final.X,
		Z:              result.Final.Z,
		Temperature:    result.Final.T,
		Phi:            result.Final.Phi,
	}
	for _, tr := range result.Tracers {
		if !tr.Active {
			continue
		}
		data.Tracers = append(data.Tracers, TracerRecord{X: tr.X, Z: tr.Z, Temp: tr.Temp, Phi: tr.Phi})
	}
	return data
}

// ExportJSON writes the full result to path.
func ExportJSON(path string, seed int64, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeExport(f, seed, result)
}

// ExportJSONTo streams the full result to w (e.g. stdout).
func ExportJSONTo(w io.Writer, seed int64, result *sim.Result) error {
	return writeExport(w, seed, result)
}

func writeExport(w io.Writer, seed int64, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(seed, result))
}
