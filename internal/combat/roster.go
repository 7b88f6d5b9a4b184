package combat

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// roster tracks the cell index of every living agent, one set per faction.
// It mirrors the Agent tiles of a Map and is only updated by Map methods.
type roster struct {
	sets [factionCount]mapset.Set[int]
}

func newRoster() roster {
	var r roster
	for i := range r.sets {
		r.sets[i] = mapset.New[int]()
	}
	return r
}

func (r roster) add(f Faction, index int)      { r.sets[f].Put(index) }
func (r roster) remove(f Faction, index int)   { r.sets[f].Remove(index) }
func (r roster) has(f Faction, index int) bool { return r.sets[f].Has(index) }
func (r roster) count(f Faction) int           { return r.sets[f].Size() }

// positions returns the faction's indices in reading order.
func (r roster) positions(f Faction) []int {
	out := make([]int, 0, r.sets[f].Size())
	r.sets[f].Each(func(index int) {
		out = append(out, index)
	})
	slices.Sort(out)
	return out
}

func (r roster) clone() roster {
	c := newRoster()
	for f := range r.sets {
		r.sets[f].Each(func(index int) {
			c.sets[f].Put(index)
		})
	}
	return c
}
