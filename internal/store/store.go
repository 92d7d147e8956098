// Package store archives finished runs on the filesystem.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"dikesim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the summary record written next to the field dumps.
type RunMetadata struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Steps          int                `json:"steps"`
	ElapsedKyr     float64            `json:"elapsed_kyr"`
	Intrusions     int                `json:"intrusions"`
	InjectedVolume float64            `json:"injected_volume"`
	InjectionRate  float64            `json:"injection_rate"`
	TracerCount    int                `json:"tracer_count"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, the final temperature
// and melt-fraction fields as CSV grids, and the tracer table.
func (s *Store) Save(seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Seed:           seed,
		Steps:          result.Steps,
		ElapsedKyr:     result.ElapsedKyr,
		Intrusions:     result.Intrusions,
		InjectedVolume: result.InjectedVolume,
		InjectionRate:  result.InjectionRate,
		TracerCount:    result.TracerCount,
		Metrics:        result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFieldCSV(filepath.Join(runDir, "temperature.csv"), result.Final.Nx, result.Final.T); err != nil {
		return "", err
	}
	if err := writeFieldCSV(filepath.Join(runDir, "phi.csv"), result.Final.Nx, result.Final.Phi); err != nil {
		return "", err
	}
	if err := s.writeTracers(filepath.Join(runDir, "tracers.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata of every archived run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadField reads an archived field grid back as a flat array.
func (s *Store) LoadField(runID, name string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var out []float64
	for _, row := range rows {
		for _, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFieldCSV dumps a flat row-major field as one CSV row per grid row.
func writeFieldCSV(path string, nx int, data []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for off := 0; off < len(data); off += nx {
		row := make([]string, nx)
		for i := 0; i < nx; i++ {
			row[i] = strconv.FormatFloat(data[off+i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeTracers(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "z", "temp", "phi"}); err != nil {
		return err
	}
	for _, tr := range result.Tracers {
		if !tr.Active {
			continue
		}
		row := []string{
			strconv.FormatFloat(tr.X, 'f', 3, 64),
			strconv.FormatFloat(tr.Z, 'f', 3, 64),
			strconv.FormatFloat(tr.Temp, 'f', 3, 64),
			strconv.FormatFloat(tr.Phi, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
