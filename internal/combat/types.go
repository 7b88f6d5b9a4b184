package combat

import (
	"fmt"
	"strings"
)

// Event is one entry of the combat log. Round is the round being played
// when the event happened (completed rounds + 1).
type Event struct {
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventAttack    = "Attack"
	EventKill      = "Kill"
	EventMove      = "Move"
	EventRoundEnd  = "RoundEnd"
	EventCombatEnd = "CombatEnd"
)

type Faction uint8

const (
	Elf Faction = iota
	Goblin
)

const factionCount = 2

func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

func (f Faction) String() string {
	switch f {
	case Elf:
		return "Elf"
	case Goblin:
		return "Goblin"
	}
	return fmt.Sprintf("Faction(%d)", uint8(f))
}

// MarshalText makes factions log and encode by name.
func (f Faction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f Faction) Symbol() byte {
	if f == Elf {
		return 'E'
	}
	return 'G'
}

// ParseFaction accepts "elf" or "goblin" in any case.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elf":
		return Elf, nil
	case "goblin":
		return Goblin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFaction, s)
}

type TileKind uint8

const (
	Open TileKind = iota
	Wall
	Agent
)

// Tile is a single map cell. Faction and HP are only meaningful for Agent.
type Tile struct {
	Kind    TileKind
	Faction Faction
	HP      int
}

func (t Tile) IsAgent() bool { return t.Kind == Agent }

func (t Tile) Symbol() byte {
	switch t.Kind {
	case Wall:
		return '#'
	case Agent:
		return t.Faction.Symbol()
	}
	return '.'
}

func (t Tile) String() string {
	switch t.Kind {
	case Open:
		return "open"
	case Wall:
		return "wall"
	}
	return fmt.Sprintf("%s(%d)", t.Faction, t.HP)
}
