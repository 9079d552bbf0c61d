package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cmlayout/pkg/observability"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

func TestAnnealModelProgress(t *testing.T) {
	m := NewAnnealModel("chain.txt", nil)
	for i := 1; i <= sparkHistory+5; i++ {
		next, cmd := m.Update(progressMsg{Iteration: i * 10, Total: 1000, AverageLoss: float64(i)})
		if cmd != nil {
			t.Fatalf("progress returned a command")
		}
		m = next.(AnnealModel)
	}
	if len(m.Losses) != sparkHistory {
		t.Errorf("kept %d losses, want %d", len(m.Losses), sparkHistory)
	}
	if m.Losses[0] != 6 {
		t.Errorf("oldest loss = %v, want 6", m.Losses[0])
	}

	view := m.View()
	for _, want := range []string{"chain.txt", "530 / 1000", "Loss trend", "q stop"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestAnnealModelQuit(t *testing.T) {
	canceled := false
	m := NewAnnealModel("x", func() { canceled = true })

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(AnnealModel)
	if !canceled || !m.Stopping {
		t.Errorf("q: canceled=%v stopping=%v", canceled, m.Stopping)
	}
	if !strings.Contains(m.View(), "stopping") {
		t.Error("view should show the stopping state")
	}

	res := &pipeline.Result{}
	next, cmd := m.Update(optimizeDoneMsg{result: res, err: context.Canceled})
	m = next.(AnnealModel)
	if cmd == nil {
		t.Fatal("done message should quit the program")
	}
	if m.Result != res || !errors.Is(m.Err, context.Canceled) {
		t.Errorf("result not recorded: %+v", m)
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		frac float64
		full int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{-1, 0},
		{2, 10},
	}
	for _, tt := range tests {
		bar := renderBar(tt.frac, 10)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("renderBar(%v): %d full cells, want %d", tt.frac, got, tt.full)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("renderBar(%v): width %d, want 10", tt.frac, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline(nil); got != "" {
		t.Errorf("sparkline(nil) = %q", got)
	}
	if got := sparkline([]float64{3, 3, 3}); got != "▁▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	got := sparkline([]float64{0, 7, 14})
	if got != "▁▄█" {
		t.Errorf("sparkline = %q, want ▁▄█", got)
	}
	if n := utf8.RuneCountInString(got); n != 3 {
		t.Errorf("sparkline length = %d", n)
	}
}

type recordingHooks struct {
	observability.NoopOptimizerHooks
	progress int
}

func (h *recordingHooks) OnProgress(context.Context, observability.Progress) { h.progress++ }

func TestTeaHooksForward(t *testing.T) {
	next := &recordingHooks{}
	var sent []tea.Msg
	h := teaHooks{next: next, send: func(m tea.Msg) { sent = append(sent, m) }}

	h.OnOptimizeStart(context.Background(), 3, 1)
	h.OnProgress(context.Background(), observability.Progress{Iteration: 7})
	if next.progress != 1 {
		t.Errorf("next saw %d progress events, want 1", next.progress)
	}
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
	if p, ok := sent[0].(progressMsg); !ok || p.Iteration != 7 {
		t.Errorf("sent %#v", sent[0])
	}
}
