package mines

import (
	"math/rand/v2"
	"time"
)

type Status uint8

const (
	NotStarted Status = iota
	Playing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) Over() bool {
	return s == Won || s == Lost
}

// Game drives a [Board] through NotStarted -> Playing -> Won | Lost.
type Game struct {
	Difficulty Difficulty
	Status     Status
	StartedAt  time.Time
	EndedAt    time.Time

	board *Board
	now   func() time.Time
}

func NewGame() *Game {
	return &Game{now: time.Now}
}

// Board exposes the current board for reading. Moves must go through the
// game so that the status stays in sync.
func (g *Game) Board() *Board {
	return g.board
}

// Start lays out a new board for a preset difficulty. It may be called in
// any state and discards the previous game.
func (g *Game) Start(d Difficulty, r *rand.Rand) error {
	params, ok := d.Params()
	if !ok {
		return ErrUnknownDifficulty
	}
	g.start(d, params, r)
	return nil
}

func (g *Game) StartCustom(params Params, r *rand.Rand) error {
	if err := params.Validate(); err != nil {
		return err
	}
	g.start(Custom, params, r)
	return nil
}

func (g *Game) start(d Difficulty, params Params, r *rand.Rand) {
	board := NewBoard(params)
	board.Generate(r)
	g.begin(d, board)
}

func (g *Game) begin(d Difficulty, board *Board) {
	if g.now == nil {
		g.now = time.Now
	}
	g.Difficulty = d
	g.board = board
	g.Status = Playing
	g.StartedAt = g.now().UTC()
	g.EndedAt = time.Time{}
}

func (g *Game) checkPlaying() error {
	switch g.Status {
	case NotStarted:
		return ErrNotStarted
	case Playing:
		return nil
	default:
		return ErrGameOver
	}
}

func (g *Game) end(s Status) {
	g.Status = s
	g.EndedAt = g.now().UTC()
	if s == Lost {
		g.board.RevealMines()
	}
}

// Open discloses (x, y). Landing on a mine loses the game and reveals every
// mine; disclosing the last safe cell wins it.
func (g *Game) Open(x, y int) (Status, error) {
	if err := g.checkPlaying(); err != nil {
		return g.Status, err
	}
	g.board.Disclose(x, y)
	if g.board.IsMine(x, y) {
		g.end(Lost)
	} else if g.board.Cleared() {
		g.end(Won)
	}
	return g.Status, nil
}

func (g *Game) Flag(x, y int) (Status, error) {
	if err := g.checkPlaying(); err != nil {
		return g.Status, err
	}
	g.board.Flag(x, y)
	return g.Status, nil
}

func (g *Game) Unflag(x, y int) (Status, error) {
	if err := g.checkPlaying(); err != nil {
		return g.Status, err
	}
	g.board.Unflag(x, y)
	return g.Status, nil
}

func (g *Game) Forfeit() (Status, error) {
	if err := g.checkPlaying(); err != nil {
		return g.Status, err
	}
	g.end(Lost)
	return g.Status, nil
}

// Elapsed is the play time so far, or the total play time of a finished
// game.
func (g *Game) Elapsed() time.Duration {
	switch {
	case g.Status == NotStarted:
		return 0
	case g.Status.Over():
		return g.EndedAt.Sub(g.StartedAt)
	default:
		return g.now().UTC().Sub(g.StartedAt)
	}
}
