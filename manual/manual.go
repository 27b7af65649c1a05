package manual

import (
	"fmt"
	"qsweeper/game"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	revealedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	bombStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	flagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is a Bubble Tea model for playing a board by hand.
type Model struct {
	newBoard func() *game.Board
	board    *game.Board
	cursor   game.Coord
	last     string
	over     bool
	outcome  game.Outcome
}

func NewModel(newBoard func() *game.Board) Model {
	return Model{
		newBoard: newBoard,
		board:    newBoard(),
		outcome:  game.Undefined,
	}
}

func (m Model) Board() *game.Board {
	return m.board
}

func (m Model) Cursor() game.Coord {
	return m.cursor
}

// Over reports whether the current board ended and with which outcome.
func (m Model) Over() (bool, game.Outcome) {
	return m.over, m.outcome
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "n":
		m.board = m.newBoard()
		m.cursor = game.Coord{}
		m.last = ""
		m.over = false
		m.outcome = game.Undefined
	case " ", "space", "enter":
		if m.over {
			break
		}
		resp := m.board.RevealTile(m.cursor)
		m.last = resp.String()
		if resp == game.Bomb {
			m.over, m.outcome = true, game.Loss
		} else if m.board.CheckWinState() {
			m.over, m.outcome = true, game.Win
		}
	case "f":
		if m.over {
			break
		}
		if m.board.FlagTile(m.cursor) {
			m.last = "Flag"
		}
	}
	return m, nil
}

func (m *Model) move(dx, dy int) {
	if next := m.cursor.Add(dx, dy); m.board.ValidateCoordinates(next) {
		m.cursor = next
	}
}

func (m Model) View() string {
	var sb strings.Builder
	for y := 0; y < m.board.Height(); y++ {
		for x := 0; x < m.board.Width(); x++ {
			c := game.Coord{X: x, Y: y}
			tile, _ := m.board.Tile(c)
			cell := styleFor(tile).Render(tile.Symbol())
			if c == m.cursor {
				cell = cursorStyle.Render(tile.Symbol())
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}

	status := fmt.Sprintf("bombs %d, hidden %d, cleared %.0f%%",
		m.board.BombCount(), m.board.UnrevealedCount(), 100*m.board.GetPercentageCleared())
	if m.last != "" {
		status += ", last: " + m.last
	}
	if m.over {
		status += ", " + m.outcome.String() + "! press n for a new board"
	}
	sb.WriteString("\n" + statusStyle.Render(status) + "\n")
	sb.WriteString(statusStyle.Render("arrows/hjkl move, space reveal, f flag, n new board, q quit") + "\n")
	return sb.String()
}

func styleFor(tile game.Tile) lipgloss.Style {
	switch {
	case tile.IsFlagged:
		return flagStyle
	case !tile.IsRevealed:
		return hiddenStyle
	case tile.IsBomb:
		return bombStyle
	default:
		return revealedStyle
	}
}

// Run plays boards from newBoard in the terminal until the user quits.
func Run(newBoard func() *game.Board) error {
	if _, err := tea.NewProgram(NewModel(newBoard)).Run(); err != nil {
		return fmt.Errorf("failed to run manual mode: %w", err)
	}
	return nil
}
