package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func plantedBoard(width, height int, points ...Point) *Board {
	b := NewBoard(Params{Width: width, Height: height, SpawnChance: 1})
	b.plant(points)
	return b
}

func naiveCount(b *Board, x, y int) int {
	count := 0
	for yy := y - 1; yy <= y+1; yy++ {
		for xx := x - 1; xx <= x+1; xx++ {
			if (xx != x || yy != y) && b.IsMine(xx, yy) {
				count++
			}
		}
	}
	return count
}

var generateTests = []Params{
	{Width: 1, Height: 1, SpawnChance: 1},
	{Width: 1, Height: 1, SpawnChance: 2},
	{Width: 9, Height: 9, SpawnChance: 9},
	{Width: 12, Height: 12, SpawnChance: 8},
	{Width: 16, Height: 16, SpawnChance: 7},
	{Width: 20, Height: 20, SpawnChance: 5},
	{Width: 30, Height: 16, SpawnChance: 3},
	{Width: 1, Height: 40, SpawnChance: 4},
}

func TestGenerateCounts(t *testing.T) {
	t.Parallel()

	for _, params := range generateTests {
		t.Run(params.Seed(), func(t *testing.T) {
			t.Parallel()
			r := newTestRand()
			b := NewBoard(params)
			for range 20 {
				b.Generate(r)
				for y := range params.Height {
					for x := range params.Width {
						c := b.grid[b.index(x, y)]
						if c == Mine {
							continue
						}
						require.Equal(t, naiveCount(b, x, y), int(c), "count at %d:%d", x, y)
					}
				}
			}
		})
	}
}

func TestGenerateMineIndex(t *testing.T) {
	t.Parallel()

	for _, params := range generateTests {
		t.Run(params.Seed(), func(t *testing.T) {
			t.Parallel()
			b := NewBoard(params)
			b.Generate(newTestRand())

			want := make(map[Point]bool)
			for y := range params.Height {
				for x := range params.Width {
					if b.grid[b.index(x, y)] == Mine {
						want[Point{x, y}] = true
					}
				}
			}

			got := b.MineCoordinates()
			assert.Len(t, got, len(want))
			assert.Equal(t, len(want), b.Mines())
			for _, p := range got {
				assert.True(t, want[p], "%v is not a mine", p)
				assert.True(t, b.IsMine(p.X, p.Y))
			}
		})
	}
}

func TestGenerateAllCovered(t *testing.T) {
	b := NewBoard(Params{Width: 9, Height: 9, SpawnChance: 9})
	b.Generate(newTestRand())
	for _, s := range b.PlayerGrid() {
		require.Equal(t, Covered, s)
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	params := Params{Width: 16, Height: 16, SpawnChance: 7}
	a, b := NewBoard(params), NewBoard(params)
	a.Generate(newTestRand())
	b.Generate(newTestRand())
	assert.Equal(t, a.grid, b.grid)
	assert.Equal(t, a.MineCoordinates(), b.MineCoordinates())
}

func TestGenerateReplacesState(t *testing.T) {
	r := newTestRand()
	b := NewBoard(Params{Width: 9, Height: 9, SpawnChance: 9})
	b.Generate(r)
	for y := range b.Height {
		for x := range b.Width {
			if (x+y)%2 == 0 {
				b.Disclose(x, y)
			} else {
				b.Flag(x, y)
			}
		}
	}

	b.Generate(r)

	assert.Equal(t, 0, b.Flags())
	assert.Equal(t, b.Width*b.Height-b.Mines(), b.SafeRemaining())
	for _, s := range b.PlayerGrid() {
		require.Equal(t, Covered, s)
	}
}

func TestMineCoordinatesIsCopy(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	coords := b.MineCoordinates()
	coords[0] = Point{2, 2}
	assert.Equal(t, []Point{{0, 0}}, b.MineCoordinates())
}

func TestInBounds(t *testing.T) {
	b := NewBoard(Params{Width: 3, Height: 2, SpawnChance: 1})
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, b.InBounds(test.x, test.y), "%d:%d", test.x, test.y)
		assert.False(t, b.IsMine(test.x, test.y))
		assert.False(t, b.IsDisclosed(test.x, test.y))
	}
}

// expectedFill computes the zero region around (x, y) and its numbered
// border by breadth-first search.
func expectedFill(b *Board, x, y int) map[Point]bool {
	want := map[Point]bool{{x, y}: true}
	queue := []Point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if b.grid[b.index(p.X, p.Y)] != Empty {
			continue
		}
		for yy := p.Y - 1; yy <= p.Y+1; yy++ {
			for xx := p.X - 1; xx <= p.X+1; xx++ {
				q := Point{xx, yy}
				if !b.InBounds(xx, yy) || want[q] {
					continue
				}
				want[q] = true
				queue = append(queue, q)
			}
		}
	}
	return want
}

func TestDiscloseFloodFill(t *testing.T) {
	t.Parallel()

	for _, params := range generateTests {
		t.Run(params.Seed(), func(t *testing.T) {
			t.Parallel()
			src := NewBoard(params)
			src.Generate(newTestRand())

			for y := range params.Height {
				for x := range params.Width {
					if src.grid[src.index(x, y)] != Empty {
						continue
					}
					b := plantedBoard(params.Width, params.Height, src.MineCoordinates()...)
					want := expectedFill(b, x, y)

					opened := b.Disclose(x, y)

					assert.Equal(t, len(want), opened)
					for yy := range params.Height {
						for xx := range params.Width {
							require.Equal(t,
								want[Point{xx, yy}], b.IsDisclosed(xx, yy),
								"start %d:%d, cell %d:%d", x, y, xx, yy,
							)
						}
					}
				}
			}
		})
	}
}

func TestDiscloseMirrorsHiddenValue(t *testing.T) {
	b := NewBoard(Params{Width: 12, Height: 12, SpawnChance: 8})
	b.Generate(newTestRand())
	for y := range b.Height {
		for x := range b.Width {
			b.Disclose(x, y)
			v, ok := b.State(x, y).Value()
			require.True(t, ok)
			require.Equal(t, b.grid[b.index(x, y)], v)
		}
	}
}

func TestDiscloseIdempotent(t *testing.T) {
	b := NewBoard(Params{Width: 16, Height: 16, SpawnChance: 7})
	b.Generate(newTestRand())
	for y := range b.Height {
		for x := range b.Width {
			b.Disclose(x, y)
			once := b.PlayerGrid()
			assert.Equal(t, 0, b.Disclose(x, y))
			require.Equal(t, once, b.PlayerGrid())
		}
	}
}

func TestDiscloseOutOfBounds(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	before := b.PlayerGrid()
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		assert.Equal(t, 0, b.Disclose(p.X, p.Y))
	}
	assert.Equal(t, before, b.PlayerGrid())
}

func TestDiscloseMineIsIsolated(t *testing.T) {
	b := plantedBoard(4, 4, Point{1, 1}, Point{3, 3})
	b.Flag(0, 0)
	before := b.PlayerGrid()

	assert.Equal(t, 1, b.Disclose(1, 1))

	after := b.PlayerGrid()
	for i := range after {
		if i == b.index(1, 1) {
			assert.Equal(t, DisclosedMine, after[i])
		} else {
			assert.Equal(t, before[i], after[i], "cell %d changed", i)
		}
	}
	assert.Equal(t, 14, b.SafeRemaining())
}

func TestSingleCellAlwaysMine(t *testing.T) {
	r := newTestRand()
	b := NewBoard(Params{Width: 1, Height: 1, SpawnChance: 1})
	for range 10 {
		b.Generate(r)
		require.True(t, b.IsMine(0, 0))
		b.Disclose(0, 0)
		require.True(t, b.IsMine(0, 0))
		require.Equal(t, DisclosedMine, b.State(0, 0))
	}
}

func TestCornerMineFloodFill(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})

	b.Disclose(2, 2)

	want := []CellState{
		Covered, 1, 0,
		1, 1, 0,
		0, 0, 0,
	}
	assert.Equal(t, Grid(want), b.PlayerGrid())
	assert.True(t, b.Cleared())
	t.Log("\n" + b.PlayerGrid().ToString(b.Width))
}

func TestFlagThenDisclose(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})

	b.Flag(1, 1)
	require.Equal(t, Flagged, b.State(1, 1))
	require.Equal(t, 1, b.Flags())

	b.Disclose(1, 1)

	assert.Equal(t, CellState(1), b.State(1, 1))
	assert.True(t, b.IsDisclosed(1, 1))
	assert.Equal(t, 0, b.Flags())
}

func TestFloodFillOverwritesFlags(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	b.Flag(2, 0)

	b.Disclose(2, 2)

	assert.Equal(t, CellState(0), b.State(2, 0))
	assert.Equal(t, 0, b.Flags())
}

func TestFlagOutOfBounds(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	before := b.PlayerGrid()
	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		b.Flag(p.X, p.Y)
		b.Unflag(p.X, p.Y)
	}
	assert.Equal(t, before, b.PlayerGrid())
	assert.Equal(t, 0, b.Flags())
}

func TestFlagDisclosedIsNoop(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	b.Disclose(1, 1)
	b.Flag(1, 1)
	assert.Equal(t, CellState(1), b.State(1, 1))
	assert.Equal(t, 0, b.Flags())
}

func TestUnflag(t *testing.T) {
	b := plantedBoard(3, 3, Point{0, 0})
	b.Flag(0, 0)
	b.Flag(0, 0)
	assert.Equal(t, 1, b.Flags())

	b.Unflag(0, 0)
	assert.Equal(t, Covered, b.State(0, 0))
	assert.Equal(t, 0, b.Flags())

	b.Unflag(0, 0)
	assert.Equal(t, Covered, b.State(0, 0))
}

func TestRevealMines(t *testing.T) {
	b := NewBoard(Params{Width: 9, Height: 9, SpawnChance: 4})
	b.Generate(newTestRand())
	require.NotZero(t, b.Mines())
	hidden := append([]Cell(nil), b.grid...)
	safe := b.SafeRemaining()

	b.RevealMines()

	for y := range b.Height {
		for x := range b.Width {
			if b.IsMine(x, y) {
				assert.Equal(t, DisclosedMine, b.State(x, y))
			} else {
				assert.Equal(t, Covered, b.State(x, y))
			}
		}
	}
	assert.Equal(t, hidden, b.grid)
	assert.Equal(t, safe, b.SafeRemaining())
}

func TestAllMinesBoardIsCleared(t *testing.T) {
	b := NewBoard(Params{Width: 4, Height: 3, SpawnChance: 1})
	b.Generate(newTestRand())
	assert.Equal(t, 12, b.Mines())
	assert.True(t, b.Cleared())
}

func TestCellStateString(t *testing.T) {
	assert.Equal(t, "▅", Covered.String())
	assert.Equal(t, "f", Flagged.String())
	assert.Equal(t, "X", DisclosedMine.String())
	assert.Equal(t, " ", CellState(0).String())
	assert.Equal(t, "8", CellState(8).String())
	assert.Equal(t, "!", CellState(12).String())
}
