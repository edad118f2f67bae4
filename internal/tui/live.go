// Package tui provides a bubbletea live view that advances an integration
// one output interval per animation frame and plots the state as it evolves.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/odekit/odekit/internal/ode"
	"github.com/odekit/odekit/internal/rk"
	"github.com/odekit/odekit/internal/tableau"
	"github.com/odekit/odekit/internal/viz"
)

const historyLen = 200

type tickMsg time.Time

// LiveModel steps a system interactively. Fixed-step mode advances with
// rk.Step; adaptive mode drives an rk.Controller.
type LiveModel struct {
	name  string
	sys   ode.System
	table tableau.Table

	adaptive bool
	tol      float64
	ctrl     *rk.Controller[ode.Vector]

	dt    float64
	tEnd  float64
	t     float64
	y     ode.Vector
	frame time.Duration

	history []float64
	err     error
	done    bool
	width   int
}

// NewLive builds a live view over [0, tEnd] with output spacing dt.
func NewLive(name string, sys ode.System, table tableau.Table, y0 ode.Vector, dt, tEnd float64, adaptive bool, tol float64, fps int) (*LiveModel, error) {
	m := &LiveModel{
		name:     name,
		sys:      sys,
		table:    table,
		adaptive: adaptive,
		tol:      tol,
		dt:       dt,
		tEnd:     tEnd,
		y:        y0.Clone(),
		frame:    time.Second / time.Duration(fps),
		history:  []float64{y0[0]},
		width:    72,
	}
	if adaptive {
		ctrl, err := rk.NewController(ode.Deriv(sys), table, 0, y0.Clone(), rk.AdaptiveConfig{Tol: tol})
		if err != nil {
			return nil, err
		}
		m.ctrl = ctrl
	}
	return m, nil
}

func (m *LiveModel) Init() tea.Cmd { return m.tick() }

func (m *LiveModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.width = msg.Width - 12
		}

	case tickMsg:
		if m.done || m.err != nil {
			return m, nil
		}
		m.advance()
		if m.err != nil || m.done {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	tNext := m.t + m.dt
	if tNext >= m.tEnd {
		tNext = m.tEnd
		m.done = true
	}

	var err error
	if m.adaptive {
		m.y, err = m.ctrl.AdvanceTo(tNext)
	} else {
		m.y, err = rk.Step(ode.Deriv(m.sys), m.t, tNext-m.t, m.y, m.table)
	}
	if err != nil {
		m.err = err
		return
	}

	m.t = tNext
	m.history = append(m.history, m.y[0])
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *LiveModel) View() string {
	var b strings.Builder

	b.WriteString(viz.Title.Render(fmt.Sprintf("%s · %s", m.name, m.table.Name)))
	b.WriteString("\n\n")

	if len(m.history) > 1 {
		b.WriteString(asciigraph.Plot(m.history,
			asciigraph.Width(m.width),
			asciigraph.Height(12),
		))
		b.WriteString("\n\n")
	}

	status := viz.StatusRunning.Render("running")
	if m.done {
		status = viz.StatusDone.Render("done")
	}
	if m.err != nil {
		status = viz.StatusDone.Render("error: " + m.err.Error())
	}

	info := []string{
		fmt.Sprintf("%s %s", viz.MetricLabel.Render("t"), viz.MetricValue.Render(fmt.Sprintf("%.3f", m.t))),
		fmt.Sprintf("%s %s", viz.MetricLabel.Render("|y|"), viz.MetricValue.Render(fmt.Sprintf("%.4f", m.y.SupNorm()))),
	}
	if m.adaptive {
		stats := m.ctrl.Stats()
		info = append(info,
			fmt.Sprintf("%s %s", viz.MetricLabel.Render("accepted"), viz.MetricValue.Render(fmt.Sprint(stats.Accepted))),
			fmt.Sprintf("%s %s", viz.MetricLabel.Render("rejected"), viz.MetricValue.Render(fmt.Sprint(stats.Rejected))),
			fmt.Sprintf("%s %s", viz.MetricLabel.Render("h"), viz.MetricValue.Render(fmt.Sprintf("%.2e", stats.NextStep))),
		)
	}
	info = append(info, status)

	b.WriteString(viz.Panel.Render(strings.Join(info, "   ")))
	b.WriteString("\n")
	b.WriteString(viz.Subtle.Render("q to quit"))
	return b.String()
}

// Run starts the live view and blocks until it exits.
func Run(m *LiveModel) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
