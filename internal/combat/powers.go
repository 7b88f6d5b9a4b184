package combat

import "gridcombat/internal/config"

// AttackPowers holds the damage one attack deals, per faction.
type AttackPowers [factionCount]int

func DefaultAttackPowers() AttackPowers {
	return AttackPowers{Elf: config.DefaultAttackPower, Goblin: config.DefaultAttackPower}
}

// NewAttackPowers reads the faction balance from rules. A nil config yields
// the defaults.
func NewAttackPowers(rules *config.RulesConfig) AttackPowers {
	if rules == nil {
		return DefaultAttackPowers()
	}
	return AttackPowers{
		Elf:    rules.Factions.Elf.AttackPower,
		Goblin: rules.Factions.Goblin.AttackPower,
	}
}

func (p AttackPowers) Of(f Faction) int { return p[f] }

// With returns a copy of p with the faction's power replaced.
func (p AttackPowers) With(f Faction, power int) AttackPowers {
	p[f] = power
	return p
}

func (p AttackPowers) byName() map[string]int {
	return map[string]int{Elf.String(): p[Elf], Goblin.String(): p[Goblin]}
}
