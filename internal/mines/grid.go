package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell is a value of the hidden layout.
type Cell int8

const (
	Mine  Cell = -1
	Empty Cell = 0
	// 1-8 for the number of mined neighbors
)

func (c Cell) IsMine() bool {
	return c == Mine
}

func (c Cell) String() string {
	switch {
	case c == Mine:
		return "X"
	case c == Empty:
		return " "
	case 1 <= c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

// CellState is a value of the visible layout.
type CellState int8

const (
	Covered       CellState = -2
	Flagged       CellState = -1
	DisclosedMine CellState = 64
	// 0-8 for a disclosed cell with given number of mined neighbors
)

func disclosedState(c Cell) CellState {
	if c == Mine {
		return DisclosedMine
	}
	return CellState(c)
}

func (s CellState) Disclosed() bool {
	return s == DisclosedMine || 0 <= s && s <= 8
}

// Value returns the hidden value mirrored by a disclosed state. ok is false
// for covered and flagged cells.
func (s CellState) Value() (c Cell, ok bool) {
	switch {
	case s == DisclosedMine:
		return Mine, true
	case 0 <= s && s <= 8:
		return Cell(s), true
	default:
		return 0, false
	}
}

func (s CellState) String() string {
	switch {
	case s == Covered:
		return "▅"
	case s == Flagged:
		return "f"
	case s == DisclosedMine:
		return "X"
	case s == 0:
		return " "
	case 1 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// neighbors calls fn for every in-bounds cell around (x, y), not including
// (x, y) itself.
func neighbors(width, height, x, y int, fn func(xx, yy int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < width && yy >= 0 && yy < height {
				fn(xx, yy)
			}
		}
	}
}
