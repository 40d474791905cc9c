package command

import (
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Result struct {
	Command Command
	Status  mines.Status
}

// Router applies commands to a single game. Calls must be serialized by the
// owner of the game.
type Router struct {
	game *mines.Game
	rnd  *rand.Rand
	log  logrus.FieldLogger
}

func NewRouter(game *mines.Game, rnd *rand.Rand, log logrus.FieldLogger) *Router {
	return &Router{game: game, rnd: rnd, log: log}
}

func (r *Router) Game() *mines.Game {
	return r.game
}

// Execute parses line and applies it.
func (r *Router) Execute(line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		r.log.WithField("line", line).WithError(err).Debug("rejected command")
		return Result{Status: r.game.Status}, err
	}
	return r.Apply(cmd)
}

// Apply runs cmd against the game. Help and Quit are left to the caller and
// only report the current status.
func (r *Router) Apply(cmd Command) (res Result, err error) {
	res.Command = cmd

	switch cmd.Kind {
	case New:
		if cmd.Params != nil {
			err = r.game.StartCustom(*cmd.Params, r.rnd)
		} else {
			err = r.game.Start(cmd.Difficulty, r.rnd)
		}
		if err == nil {
			r.log.WithFields(logrus.Fields{
				"difficulty": r.game.Difficulty,
				"seed":       r.game.Board().Seed(),
				"mines":      r.game.Board().Mines(),
			}).Info("new game")
		}
	case Open:
		_, err = r.game.Open(cmd.X, cmd.Y)
	case Flag:
		_, err = r.game.Flag(cmd.X, cmd.Y)
	case Unflag:
		_, err = r.game.Unflag(cmd.X, cmd.Y)
	}

	res.Status = r.game.Status
	if err != nil {
		return res, err
	}

	r.log.WithFields(logrus.Fields{
		"command": cmd.Kind.String(),
		"x":       cmd.X,
		"y":       cmd.Y,
		"status":  res.Status.String(),
	}).Debug("applied command")

	return res, nil
}

// ExecuteAll runs every line of text in order and stops at the first error or
// once the game is over.
func (r *Router) ExecuteAll(text string) (res Result, err error) {
	res.Status = r.game.Status
	for _, line := range lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res, err = r.Execute(line)
		if err != nil || res.Status.Over() {
			return res, err
		}
	}
	return res, nil
}

func lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, "\n")
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
