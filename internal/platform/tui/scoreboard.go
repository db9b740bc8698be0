package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Runs board layout constants
const (
	maxRuns        = 50 // Runs loaded into the table
	boardChrome    = 8  // Rows used by title, summary, help and margins
	boardMinHeight = 3
)

// RunsKeyMap defines the key bindings for the runs board.
type RunsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoard lists the player's finished runs for this process.
type RunsBoard struct {
	journal  *storage.Journal
	player   string
	runs     []storage.Run
	stats    storage.Stats
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	closed   bool
	quitting bool
	err      error
}

// NewRunsBoard creates a runs board. journal may be nil.
func NewRunsBoard(journal *storage.Journal, player string, width, height int) RunsBoard {
	b := RunsBoard{
		journal: journal,
		player:  player,
		help:    help.New(),
		keys:    DefaultRunsKeyMap(),
		width:   width,
		height:  height,
	}
	b.table = b.createTable()
	return b
}

// createTable creates a table sized for the board.
func (b *RunsBoard) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Hits", Width: 5},
		{Title: "Time", Width: 8},
		{Title: "Ended", Width: 10},
	}

	height := b.height - boardChrome
	if height < boardMinHeight {
		height = boardMinHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// Reload reads the player's runs from the journal.
func (b *RunsBoard) Reload() {
	b.err = nil
	b.runs = nil
	b.stats = storage.Stats{Player: b.player}
	if b.journal != nil {
		runs, err := b.journal.Recent(b.player, maxRuns)
		if err != nil {
			b.err = err
		} else {
			b.runs = runs
		}
		if stats, err := b.journal.PlayerStats(b.player); err == nil {
			b.stats = stats
		}
	}
	b.updateTableRows()
}

func (b *RunsBoard) updateTableRows() {
	rows := make([]table.Row, len(b.runs))
	for i, r := range b.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(b.runs)-i),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Collisions),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.EndedAt.Format("15:04:05"),
		}
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// SetSize adapts the board to a new terminal size.
func (b *RunsBoard) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.table = b.createTable()
	b.updateTableRows()
	b.help.Width = width
}

// Reset clears the closed flag so the board can be shown again.
func (b *RunsBoard) Reset() {
	b.closed = false
}

// Closed reports whether the player left the board.
func (b RunsBoard) Closed() bool { return b.closed }

// Quitting reports whether the player asked to quit from the board.
func (b RunsBoard) Quitting() bool { return b.quitting }

// Rows returns the number of runs shown.
func (b RunsBoard) Rows() int { return len(b.runs) }

// Update handles key messages for the board.
func (b RunsBoard) Update(msg tea.Msg) (RunsBoard, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keys.Quit):
			b.quitting = true
			return b, nil
		case key.Matches(msg, b.keys.Back):
			b.closed = true
			return b, nil
		}
	}

	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the board.
func (b RunsBoard) View() string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUNS"
	if b.player != "" {
		title = fmt.Sprintf("RUNS - %s", b.player)
	}
	sb.WriteString(titleStyle.Render(centerText(title, b.width)))
	sb.WriteString("\n\n")

	summary := fmt.Sprintf("best %d  runs %d  avg %.1f", b.stats.Best, b.stats.Runs, b.stats.AvgScore)
	sb.WriteString(centerText(summary, b.width))
	sb.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case b.err != nil:
		sb.WriteString(centerText("runs unavailable: "+b.err.Error(), b.width))
	case len(b.runs) == 0:
		sb.WriteString(centerText("no finished runs yet", b.width))
	default:
		sb.WriteString(tableStyle.Render(b.table.View()))
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(b.help.View(b.keys)))
	return sb.String()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
