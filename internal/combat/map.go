package combat

import (
	"strings"
)

// Map is the battlefield: a flat tile grid plus a per-faction roster of
// agent positions. Every Agent tile is in its faction's roster and every
// roster entry is an Agent tile of that faction; only the mutating methods
// below touch either side.
type Map struct {
	width   int
	tiles   []Tile
	roster  roster
	rounds  int
	initial [factionCount]int
}

func newMap(width int, tiles []Tile) *Map {
	m := &Map{width: width, tiles: tiles, roster: newRoster()}
	for i, t := range tiles {
		if t.IsAgent() {
			m.roster.add(t.Faction, i)
			m.initial[t.Faction]++
		}
	}
	return m
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return len(m.tiles) / m.width }
func (m *Map) Len() int    { return len(m.tiles) }

// Rounds is the number of fully completed rounds.
func (m *Map) Rounds() int { return m.rounds }

func (m *Map) completeRound() { m.rounds++ }

// InitialCount is the number of agents the faction started with.
func (m *Map) InitialCount(f Faction) int { return m.initial[f] }

func (m *Map) FactionCount(f Faction) int { return m.roster.count(f) }

func (m *Map) Tile(index int) Tile { return m.tiles[index] }

func (m *Map) Coordinate(index int) (row, col int) {
	return index / m.width, index % m.width
}

// HitPoints returns the HP of the agent at index.
func (m *Map) HitPoints(index int) int {
	t := m.tiles[index]
	if !t.IsAgent() {
		violate("read hit points", index, t)
	}
	return t.HP
}

// Positions returns the faction's agent indices in reading order.
func (m *Map) Positions(f Faction) []int { return m.roster.positions(f) }

// Agents returns every living agent index in reading order.
func (m *Map) Agents() []int {
	out := make([]int, 0, m.roster.count(Elf)+m.roster.count(Goblin))
	for i, t := range m.tiles {
		if t.IsAgent() {
			out = append(out, i)
		}
	}
	return out
}

// Neighbors lists the in-bounds cells above, left, right and below index,
// in that order. With openOnly set, non-Open cells are dropped.
func (m *Map) Neighbors(index int, openOnly bool) []int {
	cells, n := around(index, m.width, len(m.tiles))
	out := make([]int, 0, n)
	for _, c := range cells[:n] {
		if openOnly && m.tiles[c].Kind != Open {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NearestEnemy returns the adjacent agent opposing faction with the lowest
// HP. Ties go to the first one in up, left, right, down order.
func (m *Map) NearestEnemy(index int, faction Faction) (int, bool) {
	enemy := faction.Enemy()
	cells, n := around(index, m.width, len(m.tiles))
	best, bestHP := -1, 0
	for _, c := range cells[:n] {
		t := m.tiles[c]
		if !t.IsAgent() || t.Faction != enemy {
			continue
		}
		if best < 0 || t.HP < bestHP {
			best, bestHP = c, t.HP
		}
	}
	return best, best >= 0
}

// ApplyDamage lowers the HP of the agent at index. An agent brought to zero
// or below is removed and the call reports true.
func (m *Map) ApplyDamage(index, amount int) bool {
	t := m.tiles[index]
	if !t.IsAgent() {
		violate("apply damage", index, t)
	}
	if t.HP > amount {
		m.tiles[index].HP = t.HP - amount
		return false
	}
	m.tiles[index] = Tile{Kind: Open}
	m.roster.remove(t.Faction, index)
	return true
}

// MoveAgent moves the agent at from onto the Open cell to.
func (m *Map) MoveAgent(from, to int) {
	t := m.tiles[from]
	if !t.IsAgent() {
		violate("move from", from, t)
	}
	if dst := m.tiles[to]; dst.Kind != Open {
		violate("move into", to, dst)
	}
	m.tiles[to] = t
	m.tiles[from] = Tile{Kind: Open}
	m.roster.remove(t.Faction, from)
	m.roster.add(t.Faction, to)
}

// TotalHitPoints sums the HP of every living agent of both factions.
func (m *Map) TotalHitPoints() int {
	total := 0
	for f := Faction(0); f < factionCount; f++ {
		for _, i := range m.roster.positions(f) {
			t := m.tiles[i]
			if !t.IsAgent() || t.Faction != f {
				violate("total hit points", i, t)
			}
			total += t.HP
		}
	}
	return total
}

// Clone returns a deep copy that shares nothing with m.
func (m *Map) Clone() *Map {
	return &Map{
		width:   m.width,
		tiles:   append([]Tile(nil), m.tiles...),
		roster:  m.roster.clone(),
		rounds:  m.rounds,
		initial: m.initial,
	}
}

// String renders the grid in the input format, one line per row.
func (m *Map) String() string {
	var b strings.Builder
	b.Grow(len(m.tiles) + m.Height())
	for i, t := range m.tiles {
		b.WriteByte(t.Symbol())
		if i%m.width == m.width-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// checkRoster verifies the tile/roster correspondence in both directions.
func (m *Map) checkRoster() {
	agents := 0
	for i, t := range m.tiles {
		if !t.IsAgent() {
			continue
		}
		agents++
		if !m.roster.has(t.Faction, i) {
			violate("roster lookup", i, t)
		}
	}
	if n := m.roster.count(Elf) + m.roster.count(Goblin); n != agents {
		violate("roster size", -1, Tile{})
	}
}
