// Package records keeps the results of finished games.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrDuplicate   = errors.New("record already exists")
	ErrNotFinished = errors.New("game is not finished")
)

type Record struct {
	Id         uuid.UUID     `json:"id"`
	Difficulty string        `json:"difficulty"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Mines      int           `json:"mines"`
	Won        bool          `json:"won"`
	Duration   time.Duration `json:"-"`
	FinishedAt time.Time     `json:"finished_at"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		DurationMs int64 `json:"duration_ms"`
	}{plain(r), r.Duration.Milliseconds()})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var v struct {
		plain
		DurationMs int64 `json:"duration_ms"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Record(v.plain)
	r.Duration = time.Duration(v.DurationMs) * time.Millisecond
	return nil
}

// FromGame builds a record of a won or lost game.
func FromGame(g *mines.Game) (Record, error) {
	if !g.Status.Over() {
		return Record{}, ErrNotFinished
	}
	b := g.Board()
	return Record{
		Id:         uuid.New(),
		Difficulty: string(g.Difficulty),
		Width:      b.Width,
		Height:     b.Height,
		Mines:      b.Mines(),
		Won:        g.Status == mines.Won,
		Duration:   g.EndedAt.Sub(g.StartedAt),
		FinishedAt: g.EndedAt,
	}, nil
}

// Filter narrows [Store.Top]. Empty Difficulty matches every difficulty.
type Filter struct {
	Difficulty string `schema:"difficulty"`
	Limit      int    `schema:"limit"`
}

func (f Filter) limit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}

type Store interface {
	Save(ctx context.Context, r Record) error
	// Top returns won games, fastest first.
	Top(ctx context.Context, f Filter) ([]Record, error)
}
