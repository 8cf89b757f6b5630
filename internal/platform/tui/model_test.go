package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

// scriptedGame starts on Confirm, scores one point per tick and ends
// with the configured event once the score reaches limit.
type scriptedGame struct {
	phase  core.Phase
	score  int
	limit  int
	ending core.EventKind
	inputs []core.InputSnapshot
	resets int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.phase = core.PhaseMenu
	g.score = 0
}

func (g *scriptedGame) Step(in core.InputSnapshot, _ float64) core.StepResult {
	g.inputs = append(g.inputs, in)
	switch g.phase {
	case core.PhaseMenu:
		if in.WasPressed(core.ActionConfirm) {
			g.phase = core.PhasePlaying
			return core.StepResult{State: g.State(), Events: []core.Event{{Kind: core.EventStarted}}}
		}
	case core.PhasePlaying:
		g.score++
		if g.score >= g.limit {
			g.phase = core.PhaseGameOver
			if g.ending == core.EventWin {
				g.phase = core.PhaseWin
			}
			return core.StepResult{State: g.State(), Events: []core.Event{{Kind: g.ending, Score: g.score}}}
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "score")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Phase: g.phase, Score: g.score}
}

func newTestModel(t *testing.T, g *scriptedGame, store *storage.Store) GameModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	m := NewGameModel(g, store, cfg, log.New(io.Discard))
	m.Init()
	return m
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{limit: 5, ending: core.EventGameOver}
	m := newTestModel(t, g, store)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg{})
	if m.State().Phase != core.PhasePlaying {
		t.Fatalf("phase = %v after confirm", m.State().Phase)
	}
	if !g.inputs[0].WasPressed(core.ActionConfirm) {
		t.Error("confirm did not reach the game")
	}

	for i := 0; i < 10; i++ {
		m = send(t, m, TickMsg{})
	}
	if !m.State().GameOver() {
		t.Fatalf("phase = %v, want game over", m.State().Phase)
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d runs, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 5 || got.Outcome != storage.OutcomeGameOver || got.Seed != 99 || got.Ticks != 5 {
		t.Errorf("saved run = %+v", got)
	}
	if !strings.Contains(m.View(), "best 5") {
		t.Error("footer should show the new best score")
	}

	again := newTestModel(t, &scriptedGame{limit: 5}, store)
	if again.best != 5 {
		t.Errorf("best loaded from store = %d, want 5", again.best)
	}
}

func TestGameModelRecordsQuitMidRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{limit: 1000, ending: core.EventWin}
	m := newTestModel(t, g, store)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 4; i++ {
		m = send(t, m, TickMsg{})
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q did not quit")
	}

	scores, _ := store.TopScores("scripted", 10)
	if len(scores) != 1 || scores[0].Outcome != storage.OutcomeQuit || scores[0].Score != 3 {
		t.Errorf("saved runs = %+v", scores)
	}
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	g := &scriptedGame{limit: 2, ending: core.EventWin}
	m := newTestModel(t, g, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, TickMsg{})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back honored while playing")
	}

	for i := 0; i < 3; i++ {
		m = send(t, m, TickMsg{})
	}
	if !m.State().Won() {
		t.Fatalf("phase = %v, want win", m.State().Phase)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back ignored after win")
	}
}

func TestGameModelView(t *testing.T) {
	g := &scriptedGame{limit: 10}
	m := newTestModel(t, g, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	view := m.View()
	if !strings.Contains(view, "score") {
		t.Error("view is missing the game screen")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 10 {
		t.Errorf("view has %d lines, want 10", lines)
	}
}
