package config

// SearchConfig drives the attack power search for the tunable faction.
type SearchConfig struct {
	Faction    string `yaml:"faction"`
	StartPower int    `yaml:"start_power"`
	MaxPower   int    `yaml:"max_power"`
	Workers    int    `yaml:"workers"`
	// RunToCompletion keeps simulating a trial after the tunable faction
	// has already lost an agent.
	RunToCompletion bool   `yaml:"run_to_completion"`
	Note            string `yaml:"note"`
}
