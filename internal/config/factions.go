package config

// FactionsConfig holds the per-faction combat balance.
type FactionsConfig struct {
	Elf    FactionDef `yaml:"elf"`
	Goblin FactionDef `yaml:"goblin"`
}

type FactionDef struct {
	AttackPower int    `yaml:"attack_power"`
	Note        string `yaml:"note"`
}

// Def returns the definition for a faction name ("elf" or "goblin").
func (fc *FactionsConfig) Def(name string) (FactionDef, bool) {
	switch name {
	case "elf":
		return fc.Elf, true
	case "goblin":
		return fc.Goblin, true
	}
	return FactionDef{}, false
}
