// Package render draws the player's view of a board as text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Renderer struct {
	label   lipgloss.Style
	covered lipgloss.Style
	flag    lipgloss.Style
	mine    lipgloss.Style
	counts  [9]lipgloss.Style

	info lipgloss.Style
	hint lipgloss.Style
	win  lipgloss.Style
	lose lipgloss.Style
	err  lipgloss.Style
}

var countColors = [9]lipgloss.Color{
	"7", "12", "10", "9", "4", "1", "6", "13", "8",
}

func New(r *lipgloss.Renderer) *Renderer {
	rr := &Renderer{
		label:   r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		covered: r.NewStyle().Foreground(lipgloss.Color("8")),
		flag:    r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		mine:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("2")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("3")),
		win:     r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		lose:    r.NewStyle().Foreground(lipgloss.Color("9")),
		err:     r.NewStyle().Foreground(lipgloss.Color("3")),
	}
	for i, c := range countColors {
		rr.counts[i] = r.NewStyle().Foreground(c)
	}
	return rr
}

func Default() *Renderer {
	return New(lipgloss.DefaultRenderer())
}

func (r *Renderer) Cell(s mines.CellState) string {
	switch {
	case s == mines.Covered:
		return r.covered.Render(s.String())
	case s == mines.Flagged:
		return r.flag.Render(s.String())
	case s == mines.DisclosedMine:
		return r.mine.Render(s.String())
	case 0 <= s && s <= 8:
		return r.counts[s].Render(s.String())
	default:
		return s.String()
	}
}

// Board prints column numbers across the top and row numbers down the left.
// Columns get wider once the board has two-digit coordinates.
func (r *Renderer) Board(b *mines.Board) string {
	colw := 2
	if b.Width > 9 {
		colw = 3
	}
	labelw := 3
	if b.Height > 9 {
		labelw = 4
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelw))
	for x := range b.Width {
		sb.WriteString(r.label.Render(fmt.Sprint(x)))
		sb.WriteString(pad(fmt.Sprint(x), colw))
	}
	sb.WriteByte('\n')

	for y := range b.Height {
		sb.WriteString(r.label.Render(fmt.Sprint(y)))
		sb.WriteString(pad(fmt.Sprint(y), labelw))
		for x := range b.Width {
			sb.WriteString(r.Cell(b.State(x, y)))
			sb.WriteString(strings.Repeat(" ", colw-1))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return " "
}

func (r *Renderer) Welcome() string {
	return strings.Join([]string{
		r.info.Render("welcome to ") + r.label.Render("minesweeper"),
		r.info.Render("start a new game with: ") + r.hint.Render("new <difficulty>"),
		r.info.Render("there are 4 difficulties to choose from: ") +
			r.hint.Render("easy, medium, hard and insane"),
	}, "\n")
}

func (r *Renderer) Help() string {
	return strings.Join([]string{
		r.hint.Render("new|n [difficulty|w:h:chance]") + r.info.Render("  start a new game"),
		r.hint.Render("open|o x y") + r.info.Render("                    disclose a cell"),
		r.hint.Render("flag|f x y") + r.info.Render("                    flag a cell"),
		r.hint.Render("unflag|u x y") + r.info.Render("                  remove a flag"),
		r.hint.Render("help|h") + r.info.Render("                        show this help"),
		r.hint.Render("quit|q") + r.info.Render("                        leave"),
	}, "\n")
}

// Status describes the state of g in one line.
func (r *Renderer) Status(g *mines.Game) string {
	switch g.Status {
	case mines.Playing:
		b := g.Board()
		return r.info.Render(fmt.Sprintf(
			"%s  mines %d  flags %d  safe cells left %d",
			g.Difficulty, b.Mines(), b.Flags(), b.SafeRemaining(),
		))
	case mines.Won:
		return r.win.Render(fmt.Sprintf(
			"you won in %s", g.Elapsed().Round(time.Second),
		))
	case mines.Lost:
		return r.lose.Render("haha L noob u lost")
	default:
		return r.hint.Render("no game yet, type: new <difficulty>")
	}
}

func (r *Renderer) Error(err error) string {
	return r.err.Render(err.Error())
}
