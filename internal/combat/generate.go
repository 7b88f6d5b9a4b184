package combat

import (
	"math/rand"

	"gridcombat/internal/config"
)

type GenOptions struct {
	Width   int
	Height  int
	Elves   int
	Goblins int
	// WallDensity is the chance that an interior cell becomes a wall.
	WallDensity float64
	HitPoints   int
}

// Generate builds a random arena enclosed by walls. Agents are dropped on
// random open interior cells; when the arena runs out of room the remaining
// agents are skipped. Width and height are raised to 3 if smaller.
func Generate(rng *rand.Rand, opts GenOptions) *Map {
	w, h := max(opts.Width, 3), max(opts.Height, 3)
	hp := opts.HitPoints
	if hp <= 0 {
		hp = config.DefaultHitPoints
	}

	tiles := make([]Tile, w*h)
	var open []int
	for i := range tiles {
		r, c := i/w, i%w
		border := r == 0 || c == 0 || r == h-1 || c == w-1
		if border || rng.Float64() < opts.WallDensity {
			tiles[i] = Tile{Kind: Wall}
			continue
		}
		open = append(open, i)
	}

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	place := func(f Faction, n int) {
		for ; n > 0 && len(open) > 0; n-- {
			tiles[open[0]] = Tile{Kind: Agent, Faction: f, HP: hp}
			open = open[1:]
		}
	}
	place(Elf, opts.Elves)
	place(Goblin, opts.Goblins)
	return newMap(w, tiles)
}
