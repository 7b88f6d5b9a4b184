package combat

import (
	"fmt"
	"strings"

	"gridcombat/internal/config"
)

type MapOption func(*mapOptions)

type mapOptions struct {
	hitPoints int
}

// WithHitPoints sets the starting hit points of every agent. Non-positive
// values are ignored.
func WithHitPoints(hp int) MapOption {
	return func(o *mapOptions) {
		if hp > 0 {
			o.hitPoints = hp
		}
	}
}

// ParseMap reads a grid of '#', '.', 'E' and 'G'. Surrounding whitespace is
// trimmed, carriage returns are dropped and the first row fixes the width.
func ParseMap(input string, opts ...MapOption) (*Map, error) {
	o := mapOptions{hitPoints: config.DefaultHitPoints}
	for _, opt := range opts {
		opt(&o)
	}

	input = strings.TrimSpace(strings.ReplaceAll(input, "\r", ""))
	if input == "" {
		return nil, ErrEmptyGrid
	}
	rows := strings.Split(input, "\n")
	width := len(rows[0])
	if width == 0 {
		return nil, ErrEmptyGrid
	}

	tiles := make([]Tile, 0, width*len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrNonRectangular, r, len(row), width)
		}
		for c := 0; c < width; c++ {
			t, ok := tileFor(row[c], o.hitPoints)
			if !ok {
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrUnknownTile, row[c], r, c)
			}
			tiles = append(tiles, t)
		}
	}
	return newMap(width, tiles), nil
}

func tileFor(ch byte, hp int) (Tile, bool) {
	switch ch {
	case '#':
		return Tile{Kind: Wall}, true
	case '.':
		return Tile{Kind: Open}, true
	case 'E':
		return Tile{Kind: Agent, Faction: Elf, HP: hp}, true
	case 'G':
		return Tile{Kind: Agent, Faction: Goblin, HP: hp}, true
	}
	return Tile{}, false
}
