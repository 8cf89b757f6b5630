package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

var screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"))

// GameModel is the Bubble Tea model for one game session. Key events
// feed an InputLatch; every tick takes one snapshot from it and steps
// the session with the measured frame time.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	latch  *InputLatch
	loop   *core.Loop
	logger *log.Logger

	state      core.GameState
	best       int  // Best recorded score of this game
	runTicks   int  // Playing ticks in the current run
	saved      bool // Whether the current run has been recorded
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. A zero seed is replaced with the
// current time. Games that accept a logger log through the model's.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	logger = logger.With("game", game.ID())
	if l, ok := game.(interface{ SetLogger(*log.Logger) }); ok {
		l.SetLogger(logger)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	best := 0
	if store != nil {
		if high, err := store.HighScore(game.ID()); err == nil {
			best = high
		}
	}

	return GameModel{
		best:   best,
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		latch:  NewInputLatch(DefaultHoldWindow, nil),
		loop:   core.NewClockLoop(cfg, core.NewFrameClock(nil)),
		logger: logger,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.latch.Mouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, screenshotKey):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		m.recordQuit()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.state.Phase == core.PhasePlaying && !m.state.Paused {
			break
		}
		m.recordQuit()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if dx, dy, ok := m.keys.Look(msg); ok {
		m.latch.Look(dx, dy)
		return m, nil
	}
	m.latch.Key(m.keys.Action(msg))
	return m, nil
}

// handleTick steps the session once with the latched input.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	prev := m.state
	result, _ := m.loop.Tick(m.game, m.latch.Snapshot())
	m.state = result.State

	switch {
	case result.Has(core.EventStarted):
		m.runTicks = 0
		m.saved = false
	case prev.Phase == core.PhasePlaying && !m.state.Paused:
		m.runTicks++
	}

	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventGameOver:
			m.recordRun(storage.OutcomeGameOver, ev.Score)
		case core.EventWin:
			m.recordRun(storage.OutcomeWin, ev.Score)
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// recordQuit stores a run abandoned mid-play.
func (m *GameModel) recordQuit() {
	if m.state.Phase == core.PhasePlaying {
		m.recordRun(storage.OutcomeQuit, m.state.Score)
	}
}

// recordRun saves the current run once. Empty runs are not recorded.
func (m *GameModel) recordRun(outcome storage.Outcome, score int) {
	if m.saved || score <= 0 {
		return
	}
	m.saved = true
	m.best = max(m.best, score)
	m.logger.Info("run finished", "outcome", outcome, "score", score, "ticks", m.runTicks)
	if m.store == nil {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID:  m.game.ID(),
		Score:   score,
		Outcome: outcome,
		Seed:    m.config.Seed,
		Ticks:   m.runTicks,
	})
	if err != nil {
		m.logger.Error("could not save score", "err", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade3d", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game and the key help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys)
	if m.best > 0 {
		footer = fmt.Sprintf("best %d  %s", m.best, footer)
	}
	return RenderFrame(m.screen, footer)
}

// State returns the last stepped game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// RunTicks returns the playing ticks of the current run.
func (m GameModel) RunTicks() int {
	return m.runTicks
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg, nil)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag to look
	)

	_, err := p.Run()
	return err
}
