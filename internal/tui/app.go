// Package tui implements the live status dashboard: a Bubble Tea model that
// re-reads the state store on a ticker and renders the loop's progress.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"autobot/internal/config"
	"autobot/internal/state"
)

const (
	pollInterval = time.Second
	barWidth     = 20
)

// snapshot is one read of the state store.
type snapshot struct {
	initialized  bool
	task         *state.Task
	plan         *state.Plan
	metrics      state.Metrics
	paused       bool
	observations []state.Observation
}

// tickMsg triggers a state refresh.
type tickMsg time.Time

// Model is the dashboard model.
type Model struct {
	store   *state.Store
	cfg     config.Config
	spinner spinner.Model
	current snapshot
	width   int
	height  int
}

// Run starts the dashboard for the given project directory.
func Run(projectDir string) error {
	p := tea.NewProgram(newModel(projectDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(projectDir string) Model {
	store := state.NewStore(projectDir)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = subtleStyle

	return Model{
		store:   store,
		cfg:     config.LoadOrDefault(store.ConfigPath()),
		spinner: s,
		current: readSnapshot(store),
	}
}

func readSnapshot(store *state.Store) snapshot {
	if !store.Exists() {
		return snapshot{}
	}

	observations := store.LoadObservations()
	if len(observations) > 5 {
		observations = observations[len(observations)-5:]
	}

	return snapshot{
		initialized:  true,
		task:         store.LoadTask(),
		plan:         store.LoadPlan(),
		metrics:      store.LoadMetrics(),
		paused:       store.Paused(),
		observations: observations,
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.current = readSnapshot(m.store)
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Autobot"))
	b.WriteString("\n")

	if !m.current.initialized {
		b.WriteString(subtleStyle.Render("Not initialized. Run 'autobot init' to set up."))
		b.WriteString("\n\n")
		b.WriteString(subtleStyle.Render("q: quit"))
		return boxStyle.Render(b.String())
	}

	task := m.current.task
	if !task.Active() {
		b.WriteString(subtleStyle.Render("No active task. Run 'autobot start \"your task\"' to begin."))
		b.WriteString("\n\n")
		b.WriteString(subtleStyle.Render("q: quit"))
		return boxStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), task.Title))
	b.WriteString(m.statusLine(task))
	b.WriteString("\n\n")

	if plan := m.current.plan; plan != nil && len(plan.Subtasks) > 0 {
		completed := plan.CompletedCount()
		total := len(plan.Subtasks)
		b.WriteString(fmt.Sprintf("Subtasks  %s  %d/%d\n", progressBar(completed, total, barWidth), completed, total))
		if next := plan.FirstIncomplete(); next != nil {
			b.WriteString(subtleStyle.Render("Next: " + next.Title))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.metricsLines())

	if len(m.current.observations) > 0 {
		b.WriteString("\nRecent failures:\n")
		for _, obs := range m.current.observations {
			line := fmt.Sprintf("  %s %s", obs.Timestamp.Format("15:04:05"), obs.File)
			b.WriteString(errorStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("q: quit"))

	return boxStyle.Render(b.String())
}

func (m Model) statusLine(task *state.Task) string {
	switch {
	case m.current.paused:
		return warningStyle.Render("Status: paused")
	case task.Status == state.TaskStatusCompleted:
		return successStyle.Render("Status: completed")
	default:
		return subtleStyle.Render("Status: " + task.Status)
	}
}

func (m Model) metricsLines() string {
	metrics := m.current.metrics
	maxIterations := metrics.MaxIterations
	if maxIterations <= 0 {
		maxIterations = m.cfg.MaxIterations
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Iteration %d/%d", metrics.CurrentIteration, maxIterations))
	if metrics.TotalTestRuns > 0 {
		b.WriteString(fmt.Sprintf("  Tests %d/%d passed", metrics.TotalTestPasses, metrics.TotalTestRuns))
	}
	b.WriteString("\n")

	if metrics.ConsecutiveTestFailures > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d consecutive test failures (pauses at %d)",
			metrics.ConsecutiveTestFailures, m.cfg.FailureThreshold)))
		b.WriteString("\n")
	}

	return b.String()
}
