package mines

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Insane Difficulty = "insane"
	Custom Difficulty = "custom"
)

var difficulties = []Difficulty{Easy, Medium, Hard, Insane}

var presets = map[Difficulty]Params{
	Easy:   {Width: 9, Height: 9, SpawnChance: 9},
	Medium: {Width: 12, Height: 12, SpawnChance: 8},
	Hard:   {Width: 16, Height: 16, SpawnChance: 7},
	Insane: {Width: 20, Height: 20, SpawnChance: 5},
}

// Difficulties lists the presets from easiest to hardest.
func Difficulties() []Difficulty {
	return append([]Difficulty(nil), difficulties...)
}

// ParseDifficulty accepts a preset name in any case. An empty name selects
// [Easy].
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Easy, nil
	}
	d := Difficulty(s)
	if _, ok := presets[d]; !ok {
		return "", fmt.Errorf("%w (have %q)", ErrUnknownDifficulty, s)
	}
	return d, nil
}

func (d Difficulty) Params() (Params, bool) {
	p, ok := presets[d]
	return p, ok
}
