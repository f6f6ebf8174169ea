package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dartsim/internal/sim"
	"github.com/san-kum/dartsim/internal/sweep"
)

type (
	StepStartedMsg struct{ Step sweep.Step }
	StepDoneMsg    struct {
		Step sweep.Step
		Row  sweep.Row
	}
	SweepDoneMsg struct{ Err error }
	tickMsg      time.Time
)

// Sender is the part of *tea.Program the observer needs.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver forwards sweep progress into a running program.
type ProgramObserver struct {
	Program Sender
}

func (o ProgramObserver) OnStart(step sweep.Step) {
	o.Program.Send(StepStartedMsg{Step: step})
}

func (o ProgramObserver) OnResult(step sweep.Step, row sweep.Row, _ *sim.Result) {
	o.Program.Send(StepDoneMsg{Step: step, Row: row})
}

// ProgressModel shows a running sweep: a progress bar, the configuration
// being simulated and the scores seen so far.
type ProgressModel struct {
	total    int
	done     int
	current  sweep.Step
	started  bool
	rows     []sweep.Row
	frame    int
	width    int
	finished bool
	stopping bool
	err      error
	cancel   context.CancelFunc
}

func NewProgressModel(total int, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{total: total, width: 80, cancel: cancel}
}

func (m ProgressModel) Rows() []sweep.Row { return m.rows }
func (m ProgressModel) Err() error        { return m.err }
func (m ProgressModel) Done() int         { return m.done }

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd { return tick() }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.finished {
				return m, tea.Quit
			}
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.frame++
		return m, tick()
	case StepStartedMsg:
		m.current = msg.Step
		m.started = true
	case StepDoneMsg:
		m.done = msg.Step.Index + 1
		m.rows = append(m.rows, msg.Row)
	case SweepDoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder
	b.WriteString(GradientText("DARTSIM SWEEP", lipgloss.Color("#00ffff"), lipgloss.Color("#ff00ff")))
	b.WriteString("\n\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	barWidth := max(min(m.width-20, 50), 10)
	fmt.Fprintf(&b, "%s %3.0f%%  %d/%d\n\n", ProgressBar(pct, barWidth), pct*100, m.done, m.total)

	switch {
	case m.err != nil:
		b.WriteString(StatusError.Render("error: "+m.err.Error()) + "\n")
	case m.finished:
		b.WriteString(StatusRunning.Render("done") + "\n")
	case m.stopping:
		b.WriteString(StatusError.Render("stopping...") + "\n")
	case m.started:
		b.WriteString(AnimatedSpinner(m.frame) + " " + Simulating(m.current.NSims, m.current.Aim.Name, m.current.Dispersion) + "\n")
	}

	if n := len(m.rows); n > 0 {
		last := m.rows[n-1]
		b.WriteString("\n" + MetricLabel.Render("last: ") + fmt.Sprintf("%s @ %gmm ", last.AimPoint, last.Dispersion) +
			MetricValue.Render(fmt.Sprintf("%.3f", last.AverageScore)) + "\n")

		scores := make([]float64, 0, n)
		for _, r := range m.rows {
			if r.AimPoint == last.AimPoint {
				scores = append(scores, r.AverageScore)
			}
		}
		b.WriteString(MetricLabel.Render(last.AimPoint+": ") + SparklineChart(scores, min(len(scores), 40)) + "\n")
	}

	b.WriteString("\n" + KeyHint.Render("q to stop"))
	return b.String()
}
