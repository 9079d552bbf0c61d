package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cmlayout/pkg/observability"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// Monitor styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	sparkStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	hintStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	barWidth     = 40
	sparkHistory = 48
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// =============================================================================
// AnnealModel - Live annealing monitor
// =============================================================================

// progressMsg carries a progress snapshot from the optimizer goroutine.
type progressMsg observability.Progress

// optimizeDoneMsg reports the end of the optimizer goroutine.
type optimizeDoneMsg struct {
	result *pipeline.Result
	err    error
}

// AnnealModel is the bubbletea model that follows a running optimization.
type AnnealModel struct {
	Name     string
	Last     observability.Progress
	Losses   []float64
	Started  time.Time
	Result   *pipeline.Result
	Err      error
	Stopping bool

	cancel context.CancelFunc
}

// NewAnnealModel creates a monitor for the save called name. cancel stops
// the optimizer when the user quits.
func NewAnnealModel(name string, cancel context.CancelFunc) AnnealModel {
	return AnnealModel{Name: name, Started: time.Now(), cancel: cancel}
}

func (m AnnealModel) Init() tea.Cmd {
	return nil
}

func (m AnnealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			m.Stopping = true
		}
	case progressMsg:
		m.Last = observability.Progress(msg)
		m.Losses = append(m.Losses, msg.AverageLoss)
		if len(m.Losses) > sparkHistory {
			m.Losses = m.Losses[len(m.Losses)-sparkHistory:]
		}
	case optimizeDoneMsg:
		m.Result = msg.result
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m AnnealModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Annealing " + m.Name))
	b.WriteString("\n\n")

	frac := 0.0
	if m.Last.Total > 0 {
		frac = float64(m.Last.Iteration) / float64(m.Last.Total)
	}
	b.WriteString(renderBar(frac, barWidth))
	b.WriteString(fmt.Sprintf(" %3.0f%%\n\n", frac*100))

	rows := [][2]string{
		{"Iteration", fmt.Sprintf("%d / %d", m.Last.Iteration, m.Last.Total)},
		{"Temperature", fmt.Sprintf("%.3f", m.Last.Temperature)},
		{"Avg loss", fmt.Sprintf("%.4f", m.Last.AverageLoss)},
		{"Accepted", fmt.Sprintf("%d", m.Last.Accepted)},
		{"Rejected", fmt.Sprintf("%d", m.Last.Rejected)},
		{"Skipped", fmt.Sprintf("%d", m.Last.Skipped)},
		{"Elapsed", time.Since(m.Started).Round(100 * time.Millisecond).String()},
	}
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	for _, r := range rows {
		b.WriteString(keyStyle.Render(r[0]) + " " + StyleValue.Render(r[1]) + "\n")
	}

	if len(m.Losses) > 1 {
		b.WriteString("\n" + keyStyle.Render("Loss trend") + " " + sparkStyle.Render(sparkline(m.Losses)) + "\n")
	}

	b.WriteString("\n")
	if m.Stopping {
		b.WriteString(StyleWarning.Render("stopping..."))
	} else {
		b.WriteString(hintStyle.Render("q stop and keep current placement"))
	}
	b.WriteString("\n")
	return b.String()
}

// renderBar draws a horizontal progress bar for frac in [0, 1].
func renderBar(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	full := int(frac * float64(width))
	return barFullStyle.Render(strings.Repeat("█", full)) + barEmptyStyle.Render(strings.Repeat("░", width-full))
}

// sparkline maps values onto block characters scaled between their min and max.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

// =============================================================================
// Hooks bridge
// =============================================================================

// teaHooks forwards optimizer progress to a running bubbletea program and
// passes every event on to next.
type teaHooks struct {
	next observability.OptimizerHooks
	send func(tea.Msg)
}

func (h teaHooks) OnOptimizeStart(ctx context.Context, components, movable int) {
	h.next.OnOptimizeStart(ctx, components, movable)
}

func (h teaHooks) OnProgress(ctx context.Context, p observability.Progress) {
	h.next.OnProgress(ctx, p)
	h.send(progressMsg(p))
}

func (h teaHooks) OnOptimizeComplete(ctx context.Context, s observability.Summary, d time.Duration, err error) {
	h.next.OnOptimizeComplete(ctx, s, d, err)
}

// runAnnealTUI runs the optimization in the background while the monitor
// owns the terminal. Quitting the monitor cancels the run; the partial
// result is still returned.
func (c *CLI) runAnnealTUI(ctx context.Context, runner *pipeline.Runner, data []byte, opts pipeline.Options, name string) (*pipeline.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewAnnealModel(name, cancel), tea.WithContext(ctx))
	opts.Hooks = teaHooks{next: observability.Optimizer(), send: p.Send}

	go func() {
		res, err := runner.Optimize(runCtx, data, opts)
		p.Send(optimizeDoneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("monitor: %w", err)
	}
	m := final.(AnnealModel)
	return m.Result, m.Err
}
