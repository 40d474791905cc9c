package mines

import "math/rand/v2"

// Generate lays out a fresh set of mines using r, computes neighbor counts and
// covers every cell. Any previous state of the board is discarded.
func (b *Board) Generate(r *rand.Rand) {
	b.reset()
	for i := range b.grid {
		if r.IntN(b.SpawnChance) == 0 {
			b.grid[i] = Mine
		}
	}
	b.countNeighbors()
}

// plant replaces the layout with mines at exactly the given points.
func (b *Board) plant(points []Point) {
	b.reset()
	for _, p := range points {
		if b.InBounds(p.X, p.Y) {
			b.grid[b.index(p.X, p.Y)] = Mine
		}
	}
	b.countNeighbors()
}

// countNeighbors fills in neighbor counts and rebuilds the mine index from the mines
// already present in grid.
func (b *Board) countNeighbors() {
	for y := range b.Height {
		for x := range b.Width {
			i := b.index(x, y)
			if b.grid[i] == Mine {
				b.mines = append(b.mines, Point{x, y})
				continue
			}
			var v Cell
			neighbors(b.Width, b.Height, x, y, func(xx, yy int) {
				if b.grid[b.index(xx, yy)] == Mine {
					v++
				}
			})
			b.grid[i] = v
		}
	}
}
