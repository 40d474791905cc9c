package mines

import (
	"fmt"
	"strings"
)

// Params describes a board. Every cell independently becomes a mine with
// probability 1/SpawnChance.
type Params struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	SpawnChance int `json:"spawn_chance"`
}

func (p Params) Unpack() (w int, h int, sc int) {
	return p.Width, p.Height, p.SpawnChance
}

// Coordinates stay below 100 on either axis.
const (
	MaxWidth  = 100
	MaxHeight = 100
)

func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 || p.SpawnChance < 1 {
		return fmt.Errorf(
			"%w: width, height and spawn chance must be positive (have %d, %d, %d)",
			ErrInvalidParams, p.Width, p.Height, p.SpawnChance,
		)
	}
	if p.Width > MaxWidth || p.Height > MaxHeight {
		return fmt.Errorf(
			"%w: board is at most %dx%d (have %dx%d)",
			ErrInvalidParams, MaxWidth, MaxHeight, p.Width, p.Height,
		)
	}
	return nil
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.SpawnChance)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.SpawnChance)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`%w: bad seed (sseed = "%s", n = %d, err = %v)`,
			ErrInvalidParams, sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Params) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}
