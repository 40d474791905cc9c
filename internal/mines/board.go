package mines

import "slices"

// Board owns the hidden layout, the visible layout and the mine index of a
// single game. It is not safe for concurrent use.
type Board struct {
	Params
	grid       []Cell // real mine points and neighbor counts
	playerGrid Grid   // player knowledge
	mines      []Point

	safeDisclosed int
	flags         int
}

// NewBoard allocates a board without mines. Call [Board.Generate] to lay
// them out.
func NewBoard(params Params) *Board {
	b := &Board{Params: params}
	b.reset()
	return b
}

func (b *Board) reset() {
	n := b.Width * b.Height
	b.grid = make([]Cell, n)
	b.playerGrid = make(Grid, n)
	for i := range b.playerGrid {
		b.playerGrid[i] = Covered
	}
	b.mines = nil
	b.safeDisclosed = 0
	b.flags = 0
}

func (b *Board) index(x, y int) int {
	return y*b.Width + x
}

func (b *Board) InBounds(x, y int) bool {
	return b.PointInBounds(x, y)
}

func (b *Board) IsMine(x, y int) bool {
	return b.InBounds(x, y) && b.grid[b.index(x, y)] == Mine
}

func (b *Board) IsDisclosed(x, y int) bool {
	return b.InBounds(x, y) && b.playerGrid[b.index(x, y)].Disclosed()
}

// State returns the visible value at (x, y). Cells outside the board read as
// [Covered].
func (b *Board) State(x, y int) CellState {
	if !b.InBounds(x, y) {
		return Covered
	}
	return b.playerGrid[b.index(x, y)]
}

// PlayerGrid returns a copy of the visible layout in row-major order.
func (b *Board) PlayerGrid() Grid {
	return slices.Clone(b.playerGrid)
}

// MineCoordinates returns a copy of the mine index in row-major order.
func (b *Board) MineCoordinates() []Point {
	return slices.Clone(b.mines)
}

func (b *Board) Mines() int {
	return len(b.mines)
}

func (b *Board) Flags() int {
	return b.flags
}

// SafeRemaining is the number of non-mine cells that are not disclosed yet.
func (b *Board) SafeRemaining() int {
	return len(b.grid) - len(b.mines) - b.safeDisclosed
}

// Cleared reports whether every non-mine cell is disclosed.
func (b *Board) Cleared() bool {
	return b.SafeRemaining() == 0
}

func (b *Board) setDisclosed(i int) bool {
	prev := b.playerGrid[i]
	if prev.Disclosed() {
		return false
	}
	if prev == Flagged {
		b.flags--
	}
	b.playerGrid[i] = disclosedState(b.grid[i])
	if b.grid[i] != Mine {
		b.safeDisclosed++
	}
	return true
}

// Disclose reveals (x, y), replacing a flag if there is one. An empty cell
// also reveals its neighbors, and the fill keeps spreading through empty
// cells only. Out-of-bounds coordinates are ignored. Returns the number of
// cells that became disclosed.
func (b *Board) Disclose(x, y int) int {
	if !b.InBounds(x, y) {
		return 0
	}

	var (
		opened  int
		todo    celltodo
		visited = make([]bool, len(b.grid))
		start   = b.index(x, y)
	)

	visited[start] = true
	todo.push(start)

	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		if b.setDisclosed(i) {
			opened++
		}
		if b.grid[i] != Empty {
			continue
		}
		neighbors(b.Width, b.Height, i%b.Width, i/b.Width, func(xx, yy int) {
			j := b.index(xx, yy)
			if visited[j] || b.playerGrid[j].Disclosed() {
				return
			}
			visited[j] = true
			todo.push(j)
		})
	}

	return opened
}

// Flag marks a covered cell. Disclosed and out-of-bounds cells are left
// alone.
func (b *Board) Flag(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	switch b.playerGrid[i] {
	case Covered:
		b.playerGrid[i] = Flagged
		b.flags++
	}
}

func (b *Board) Unflag(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	if b.playerGrid[i] == Flagged {
		b.playerGrid[i] = Covered
		b.flags--
	}
}

// RevealMines discloses every mine. The hidden layout and the mine index are
// not touched.
func (b *Board) RevealMines() {
	for _, p := range b.mines {
		b.Disclose(p.X, p.Y)
	}
}
