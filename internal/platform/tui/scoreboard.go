package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade3d/internal/registry"
	"github.com/vovakirdan/arcade3d/internal/storage"
)

const (
	scoreboardLimit = 100
	// Rows taken by the title, tabs, summary, panel border and help line.
	scoreboardChrome = 9
)

// outcomeFilters is the cycle order of the result filter. The empty
// outcome shows every run.
var outcomeFilters = []storage.Outcome{"", storage.OutcomeWin, storage.OutcomeGameOver, storage.OutcomeQuit}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

type scoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Filter, k.Back, k.Quit}
}

func (k scoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

func defaultScoreboardKeyMap() scoreboardKeyMap {
	return scoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next game")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev game")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter result")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// rankedScore is a stored run with its rank among all runs of the game.
type rankedScore struct {
	rank int
	storage.ScoreEntry
}

// filterScores ranks scores in order and keeps those matching outcome.
// The empty outcome keeps all of them.
func filterScores(scores []storage.ScoreEntry, outcome storage.Outcome) []rankedScore {
	out := make([]rankedScore, 0, len(scores))
	for i, s := range scores {
		if outcome != "" && s.Outcome != outcome {
			continue
		}
		out = append(out, rankedScore{rank: i + 1, ScoreEntry: s})
	}
	return out
}

// ScoreboardModel shows the best runs of each registered game.
type ScoreboardModel struct {
	store    *storage.Store
	games    []registry.GameInfo
	game     int
	filter   int
	scores   []storage.ScoreEntry
	shown    int
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     scoreboardKeyMap
	width    int
	height   int
	tickRate int
	back     bool
	quitting bool
}

// NewScoreboardModel creates a scoreboard sized width x height. tickRate
// converts stored tick counts into play time.
func NewScoreboardModel(store *storage.Store, width, height, tickRate int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		games:    registry.List(),
		help:     help.New(),
		keys:     defaultScoreboardKeyMap(),
		width:    width,
		height:   height,
		tickRate: tickRate,
	}
	m.table = newScoreTable(width, height)
	m.load()
	return m
}

func newScoreTable(width, height int) table.Model {
	dateW := 12
	if width > 64 {
		dateW = min(width-52, 20)
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Result", Width: 8},
			{Title: "Time", Width: 6},
			{Title: "Seed", Width: 10},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches scores and stats for the selected game.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.refresh()
}

// refresh rebuilds the table rows from the loaded scores and the filter.
func (m *ScoreboardModel) refresh() {
	ranked := filterScores(m.scores, outcomeFilters[m.filter])
	rows := make([]table.Row, len(ranked))
	for i, s := range ranked {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", s.rank),
			fmt.Sprint(s.Score),
			outcomeLabel(s.Outcome),
			runDuration(s.Ticks, m.tickRate),
			fmt.Sprint(s.Seed),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.shown = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleGame(step int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + step + len(m.games)) % len(m.games)
	m.load()
}

// outcomeLabel names how a run ended.
func outcomeLabel(o storage.Outcome) string {
	switch o {
	case storage.OutcomeWin:
		return "cleared"
	case storage.OutcomeQuit:
		return "quit"
	case "":
		return "all"
	default:
		return "crashed"
	}
}

// runDuration formats a tick count as m:ss of play time.
func runDuration(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	secs := ticks / tickRate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycleGame(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycleGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(outcomeFilters)
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")

	summary := fmt.Sprintf("showing: %s", outcomeLabel(outcomeFilters[m.filter]))
	if m.stats != nil {
		summary = fmt.Sprintf("runs %d  cleared %d  best %d  avg %.1f  played %s  |  %s",
			m.stats.GamesCount, m.stats.Wins, m.stats.HighScore, m.stats.AvgScore,
			runDuration(int(m.stats.TotalTicks), m.tickRate), summary)
	}
	b.WriteString(centerText(menuDimStyle.Render(summary), m.width))
	b.WriteString("\n")

	body := m.table.View()
	if m.shown == 0 {
		body = boardEmptyStyle.Render("No runs recorded yet.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardPanelStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the game titles with the selected one highlighted, or just
// the selected title when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return menuDimStyle.Render("no games registered")
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(line) > m.width-4 {
		line = boardActiveTab.Render("< " + m.games[m.game].Title + " >")
	}
	return line
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard until the user leaves it. It reports
// true when the user went back rather than quit.
func RunScoreboard(store *storage.Store, width, height, tickRate int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height, tickRate), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
