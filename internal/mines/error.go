package mines

import "errors"

var (
	ErrInvalidParams     = errors.New("invalid game params")
	ErrUnknownDifficulty = errors.New("difficulty must be one of easy, medium, hard, insane")
	ErrNotStarted        = errors.New("game has not started")
	ErrGameOver          = errors.New("game is over")
)
