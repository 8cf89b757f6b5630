package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

func TestFilterScoresKeepsOverallRank(t *testing.T) {
	scores := []storage.ScoreEntry{
		{Score: 50, Outcome: storage.OutcomeWin},
		{Score: 40, Outcome: storage.OutcomeGameOver},
		{Score: 30, Outcome: storage.OutcomeWin},
		{Score: 20, Outcome: storage.OutcomeQuit},
	}

	tests := []struct {
		outcome storage.Outcome
		ranks   []int
	}{
		{"", []int{1, 2, 3, 4}},
		{storage.OutcomeWin, []int{1, 3}},
		{storage.OutcomeGameOver, []int{2}},
		{storage.OutcomeQuit, []int{4}},
	}
	for _, tt := range tests {
		got := filterScores(scores, tt.outcome)
		if len(got) != len(tt.ranks) {
			t.Errorf("filter %q: got %d rows, want %d", tt.outcome, len(got), len(tt.ranks))
			continue
		}
		for i, r := range tt.ranks {
			if got[i].rank != r {
				t.Errorf("filter %q row %d: rank %d, want %d", tt.outcome, i, got[i].rank, r)
			}
		}
	}
}

func TestRunDuration(t *testing.T) {
	tests := []struct {
		ticks, rate int
		want        string
	}{
		{0, 60, "0:00"},
		{59, 60, "0:00"},
		{60 * 75, 60, "1:15"},
		{300, 30, "0:10"},
		{120, 0, "0:02"},
	}
	for _, tt := range tests {
		if got := runDuration(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("runDuration(%d, %d) = %q, want %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func TestScoreboardFilterAndGames(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{GameID: "alpha", Score: 9, Outcome: storage.OutcomeWin},
		{GameID: "alpha", Score: 4, Outcome: storage.OutcomeGameOver},
		{GameID: "beta", Score: 2, Outcome: storage.OutcomeQuit},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 24, 60)
	m.games = []registry.GameInfo{{ID: "alpha", Title: "Alpha"}, {ID: "beta", Title: "Beta"}}
	m.load()
	if m.shown != 2 {
		t.Fatalf("alpha rows = %d, want 2", m.shown)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	m = next.(ScoreboardModel)
	if m.shown != 1 {
		t.Errorf("cleared rows = %d, want 1", m.shown)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.game != 1 || m.shown != 0 {
		t.Errorf("beta cleared: game %d rows %d, want 1 and 0", m.game, m.shown)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty filter should show the placeholder")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
