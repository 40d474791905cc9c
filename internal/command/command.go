// Package command turns text lines such as "open 3 4" or "new hard" into
// moves on a [mines.Game].
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Kind uint8

const (
	Noop Kind = iota
	New
	Open
	Flag
	Unflag
	Help
	Quit
)

func (k Kind) String() string {
	switch k {
	case Noop:
		return "noop"
	case New:
		return "new"
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Unflag:
		return "unflag"
	case Help:
		return "help"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

var kinds = map[string]Kind{
	"new":    New,
	"n":      New,
	"open":   Open,
	"o":      Open,
	"flag":   Flag,
	"f":      Flag,
	"unflag": Unflag,
	"u":      Unflag,
	"help":   Help,
	"h":      Help,
	"quit":   Quit,
	"q":      Quit,
}

var ErrUnknownCommand = errors.New("unknown command")

type Command struct {
	Kind       Kind
	X, Y       int
	Difficulty mines.Difficulty
	Params     *mines.Params // set for custom boards given as w:h:chance
}

// Parse reads one command line. Coordinates that are missing or do not start
// with a number read as 0.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: Noop}, nil
	}

	kind, ok := kinds[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	cmd := Command{Kind: kind}
	args := fields[1:]

	switch kind {
	case New:
		if len(args) == 0 {
			cmd.Difficulty = mines.Easy
			return cmd, nil
		}
		if strings.Contains(args[0], ":") {
			params, err := mines.ParseSeed(args[0])
			if err != nil {
				return Command{}, err
			}
			cmd.Difficulty = mines.Custom
			cmd.Params = params
			return cmd, nil
		}
		d, err := mines.ParseDifficulty(args[0])
		if err != nil {
			return Command{}, err
		}
		cmd.Difficulty = d
	case Open, Flag, Unflag:
		cmd.X = leadingInt(arg(args, 0))
		cmd.Y = leadingInt(arg(args, 1))
	}

	return cmd, nil
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// leadingInt parses an optional sign followed by decimal digits from the
// start of s and ignores the rest. Anything else reads as 0.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && '0' <= s[end] && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
