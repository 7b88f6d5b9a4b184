package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHitPoints     = 200
	DefaultAttackPower   = 3
	DefaultSearchFaction = "elf"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid rules")

// RulesConfig is the full combat balance read from rules.yaml.
type RulesConfig struct {
	HitPoints int            `yaml:"hit_points"`
	Factions  FactionsConfig `yaml:"factions"`
	Search    SearchConfig   `yaml:"search"`
	Note      string         `yaml:"note"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads rules from path, fills unset fields with defaults and validates
// the result. An empty path returns Default().
func Load(path string) (*RulesConfig, error) {
	if path == "" {
		return Default(), nil
	}
	var rc RulesConfig
	if err := loadYAML(path, &rc); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := rc.finish(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &rc, nil
}

// Parse is Load for an in-memory document.
func Parse(data []byte) (*RulesConfig, error) {
	var rc RulesConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := rc.finish(); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Default returns the reference balance: 200 hit points, attack power 3 for
// both factions, elves tunable from power 4.
func Default() *RulesConfig {
	rc := &RulesConfig{}
	rc.applyDefaults()
	return rc
}

func (rc *RulesConfig) finish() error {
	rc.applyDefaults()
	return rc.Validate()
}

func (rc *RulesConfig) applyDefaults() {
	if rc.HitPoints == 0 {
		rc.HitPoints = DefaultHitPoints
	}
	if rc.Factions.Elf.AttackPower == 0 {
		rc.Factions.Elf.AttackPower = DefaultAttackPower
	}
	if rc.Factions.Goblin.AttackPower == 0 {
		rc.Factions.Goblin.AttackPower = DefaultAttackPower
	}
	rc.Search.Faction = strings.ToLower(strings.TrimSpace(rc.Search.Faction))
	if rc.Search.Faction == "" {
		rc.Search.Faction = DefaultSearchFaction
	}
	if rc.Search.StartPower == 0 {
		if def, ok := rc.Factions.Def(rc.Search.Faction); ok {
			rc.Search.StartPower = def.AttackPower + 1
		}
	}
	if rc.Search.MaxPower == 0 {
		rc.Search.MaxPower = max(rc.HitPoints, rc.Search.StartPower)
	}
	if rc.Search.Workers == 0 {
		rc.Search.Workers = 1
	}
}

// Validate reports the first rule that the config breaks.
func (rc *RulesConfig) Validate() error {
	switch {
	case rc.HitPoints <= 0:
		return fmt.Errorf("%w: hit_points must be positive (%d)", ErrInvalidConfig, rc.HitPoints)
	case rc.Factions.Elf.AttackPower <= 0:
		return fmt.Errorf("%w: factions.elf.attack_power must be positive (%d)", ErrInvalidConfig, rc.Factions.Elf.AttackPower)
	case rc.Factions.Goblin.AttackPower <= 0:
		return fmt.Errorf("%w: factions.goblin.attack_power must be positive (%d)", ErrInvalidConfig, rc.Factions.Goblin.AttackPower)
	}
	if _, ok := rc.Factions.Def(rc.Search.Faction); !ok {
		return fmt.Errorf("%w: search.faction %q is not elf or goblin", ErrInvalidConfig, rc.Search.Faction)
	}
	switch {
	case rc.Search.StartPower <= 0:
		return fmt.Errorf("%w: search.start_power must be positive (%d)", ErrInvalidConfig, rc.Search.StartPower)
	case rc.Search.MaxPower < rc.Search.StartPower:
		return fmt.Errorf("%w: search.max_power %d is below start_power %d", ErrInvalidConfig, rc.Search.MaxPower, rc.Search.StartPower)
	case rc.Search.Workers < 1:
		return fmt.Errorf("%w: search.workers must be at least 1 (%d)", ErrInvalidConfig, rc.Search.Workers)
	}
	return nil
}
