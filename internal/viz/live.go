package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johnxnguyen/newton/internal/config"
	"github.com/johnxnguyen/newton/internal/geometry"
	"github.com/johnxnguyen/newton/internal/metrics"
	"github.com/johnxnguyen/newton/internal/physics"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

type tickMsg time.Time

// Model drives a field interactively: each tick advances the simulation
// one step and redraws the body positions on the braille canvas.
type Model struct {
	cfg      *config.Config
	field    *physics.Field
	canvas   *Canvas
	energy   *metrics.Energy
	momentum *metrics.Momentum
	step     int
	fps      int
	running  bool
	err      error
}

// NewModel materializes the configuration into a fresh field.
func NewModel(cfg *config.Config, fps int) (Model, error) {
	field := cfg.NewField()
	if err := cfg.Populate(field, rand.New(rand.NewSource(cfg.Seed))); err != nil {
		return Model{}, err
	}

	if fps <= 0 {
		fps = 30
	}

	return Model{
		cfg:      cfg,
		field:    field,
		canvas:   NewCanvas(canvasWidth, canvasHeight, viewport(field)),
		energy:   metrics.NewEnergy(),
		momentum: metrics.NewMomentum(),
		fps:      fps,
		running:  true,
	}, nil
}

// viewport frames the current body population with a little headroom.
func viewport(field *physics.Field) geometry.Square {
	bodies := field.Bodies()
	positions := make([]geometry.Point, len(bodies))
	for i, b := range bodies {
		positions[i] = b.Position
	}
	box := geometry.Bounds(positions)
	box.Half *= 1.2
	return box
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			m.advance()
		case "r":
			fresh, err := NewModel(m.cfg, m.fps)
			if err != nil {
				m.err = err
				return m, nil
			}
			// the pending tick keeps driving the new model
			fresh.running = m.running
			return fresh, nil
		}

	case tickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) advance() {
	m.field.Step()
	m.energy.Observe(m.field, m.step)
	m.momentum.Observe(m.field, m.step)
	m.step++
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	m.canvas.Clear()
	m.canvas.SetViewport(viewport(m.field))
	for _, b := range m.field.Bodies() {
		m.canvas.Plot(b.Position)
	}

	status := headerStyle.Render("newton")
	if !m.running {
		status += "  " + pausedStyle.Render("paused")
	}

	var stats strings.Builder
	stats.WriteString(status + "\n")
	row := func(label string, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("step", fmt.Sprintf("%d", m.step))
	row("bodies", fmt.Sprintf("%d", m.field.Len()))
	row("energy", fmt.Sprintf("%.4g", m.energy.Value()))
	row("momentum", fmt.Sprintf("%.4g", m.momentum.Value()))

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		"  "+strings.ReplaceAll(stats.String(), "\n", "\n  "),
	)

	return view + helpStyle.Render("space pause · s step · r reset · q quit") + "\n"
}

// RunLive starts the interactive view for the given configuration.
func RunLive(cfg *config.Config, fps int) error {
	model, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model).Run()
	return err
}
