// Package tui provides the live terminal view of a running simulation.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dikesim/internal/sim"
	"dikesim/internal/viz"
)

const (
	mapCols = 72
	mapRows = 28
	// stepsPerFrame batches solver steps between redraws; one dt is
	// far below anything visible.
	stepsPerFrame = 200
)

type tickMsg time.Time

// Model drives a simulation from bubbletea's event loop.
type Model struct {
	driver   *sim.Driver
	paused   bool
	done     bool
	err      error
	lastDike string
}

func NewModel(driver *sim.Driver) Model {
	return Model{driver: driver}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tickMsg:
		if m.paused || m.done || m.err != nil {
			return m, tick()
		}

		for n := 0; n < stepsPerFrame; n++ {
			if m.driver.Clock().Steps >= m.driver.PlannedSteps() {
				m.done = true
				break
			}
			rec, err := m.driver.Step()
			if err != nil {
				m.err = err
				break
			}
			if rec.Dike != nil {
				m.lastDike = fmt.Sprintf("%s dike at (%.0f, %.0f) m, %.1f kyr",
					rec.Dike.Shape, rec.Dike.CenterX, rec.Dike.CenterZ, rec.TimeKyr)
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	snap := m.driver.Snapshot()
	clock := m.driver.Clock()

	status := viz.StatusRunning.Render("running")
	switch {
	case m.err != nil:
		status = fmt.Sprintf("error: %v", m.err)
	case m.done:
		status = viz.StatusDone.Render("finished")
	case m.paused:
		status = viz.Subtle.Render("paused")
	}

	header := viz.Title.Render("dikesim") + "  " + status
	stats := fmt.Sprintf("%s %s   %s %d/%d   %s %d   %s %.3g m3",
		viz.MetricLabel.Render("t:"),
		viz.MetricValue.Render(fmt.Sprintf("%.2f kyr", clock.Kyr())),
		viz.MetricLabel.Render("step:"), clock.Steps, m.driver.PlannedSteps(),
		viz.MetricLabel.Render("tracers:"), len(m.driver.TracerSnapshot()),
		viz.MetricLabel.Render("injected:"), m.driver.InjectedVolume(),
	)

	body := viz.Heatmap(snap, mapCols, mapRows, m.driver.TracerSnapshot())

	footer := viz.KeyHint.Render("space pause · q quit")
	if m.lastDike != "" {
		footer = viz.Subtle.Render(m.lastDike) + "\n" + footer
	}

	return header + "\n" + stats + "\n" + viz.Panel.Render(body) + "\n" + footer + "\n"
}
