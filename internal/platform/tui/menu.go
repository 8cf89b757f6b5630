package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

// MenuItem is one game in the picker with its recorded history.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	Runs      int
	Wins      int
}

// menuChoice is what the user left the menu for.
type menuChoice int

const (
	menuBrowsing menuChoice = iota
	menuPlay
	menuScores
	menuQuit
)

type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Scores key.Binding
	Quit   key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Scores, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up:     key.NewBinding(key.WithKeys("w", "up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("s", "down", "j"), key.WithHelp("↓", "down")),
		Play:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the game picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	choice menuChoice
	config core.RuntimeConfig
	keys   menuKeyMap
	help   help.Model
}

// NewMenuModel lists every registered game. With a store, each entry
// carries its best score and run counts.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))
	for i, g := range games {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if store == nil {
			continue
		}
		if st, err := store.GetGameStats(g.ID); err == nil {
			items[i].HighScore, items[i].Runs, items[i].Wins = st.HighScore, st.GamesCount, st.Wins
		}
	}
	return MenuModel{items: items, config: cfg, keys: defaultMenuKeyMap(), help: help.New()}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and quits the program once a choice is made.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Play):
			if len(m.items) > 0 {
				m.choice = menuPlay
			}
		case key.Matches(msg, m.keys.Scores):
			m.choice = menuScores
		case key.Matches(msg, m.keys.Quit):
			m.choice = menuQuit
		}
		if m.choice != menuBrowsing {
			return m, tea.Quit
		}
	}
	return m, nil
}

// move steps the cursor, wrapping at both ends.
func (m *MenuModel) move(step int) {
	if n := len(m.items); n > 0 {
		m.cursor = (m.cursor + step + n) % n
	}
}

func (m MenuModel) View() string {
	if m.choice == menuQuit {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A R C A D E  3 D"), width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("no games registered"), width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		marker, style := "  ", lipgloss.NewStyle()
		if i == m.cursor {
			marker, style = "> ", menuCursorStyle
		}
		line := style.Render(fmt.Sprintf("%s%-16s", marker, item.Title))
		if item.Runs > 0 {
			line += menuDimStyle.Render(fmt.Sprintf(" best %-5d runs %-4d cleared %d", item.HighScore, item.Runs, item.Wins))
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the picked game, or nil while none is picked.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != menuPlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting reports whether the user quit from the menu.
func (m MenuModel) IsQuitting() bool {
	return m.choice == menuQuit
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.choice == menuScores
}

// Config returns the runtime config with the latest terminal size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it in width cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what RunMenu returns: a game to play, the scoreboard, or
// quit. Config carries the terminal size seen by the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program until the user chooses.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.choice {
	case menuPlay:
		res.GameID = m.Selected().GameID
	case menuScores:
		res.WantsScoreboard = true
	default:
		res.Quit = true
	}
	return res, nil
}
