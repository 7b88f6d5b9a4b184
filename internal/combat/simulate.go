package combat

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gridcombat/internal/config"
)

const (
	ModeSingle = "single"
	ModeSearch = "search"
)

type SimResult struct {
	Mode      string         `json:"mode"`
	Rounds    int            `json:"rounds"`
	HitPoints int            `json:"hit_points"`
	Outcome   uint64         `json:"outcome"`
	Winner    string         `json:"winner,omitempty"`
	Powers    map[string]int `json:"attack_powers"`
	Survivors []Survivor     `json:"survivors"`
	Losses    map[string]int `json:"losses"`
	Trials    int            `json:"trials,omitempty"`
	Events    []Event        `json:"events,omitempty"`
}

type Survivor struct {
	Index   int    `json:"index"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Faction string `json:"faction"`
	HP      int    `json:"hp"`
}

// RunSingle plays a clone of m to the end with the given powers and scores
// it as completed rounds times remaining hit points.
func RunSingle(m *Map, powers AttackPowers, opts ...Option) (SimResult, error) {
	o := newOptions(opts)
	res, b, err := runTrial(m.Clone(), powers, o)
	if err != nil {
		return SimResult{}, err
	}
	if b.Stalled() {
		return SimResult{}, fmt.Errorf("%w: after %d rounds", ErrStalemate, res.Rounds)
	}
	res.Mode = ModeSingle
	o.logger.Info("combat finished", "rounds", res.Rounds, "hit_points", res.HitPoints,
		"outcome", res.Outcome, "winner", res.Winner)
	return res, nil
}

func runTrial(m *Map, powers AttackPowers, o options) (res SimResult, b *Battle, err error) {
	defer recoverInvariant(&err)
	if m.FactionCount(Elf)+m.FactionCount(Goblin) == 0 {
		return SimResult{}, nil, ErrNoAgents
	}

	var events []Event
	if forward := o.emit; o.record {
		o.emit = func(ev Event) {
			events = append(events, ev)
			if forward != nil {
				forward(ev)
			}
		}
	}

	b = newBattle(m, powers, o)
	b.Run()
	res = summarize(m, powers)
	res.Events = events
	return res, b, nil
}

func summarize(m *Map, powers AttackPowers) SimResult {
	hp := m.TotalHitPoints()
	res := SimResult{
		Rounds:    m.Rounds(),
		HitPoints: hp,
		Outcome:   uint64(m.Rounds()) * uint64(hp),
		Powers:    powers.byName(),
		Survivors: []Survivor{},
		Losses:    map[string]int{},
	}
	for f := Faction(0); f < factionCount; f++ {
		res.Losses[f.String()] = m.InitialCount(f) - m.FactionCount(f)
	}
	switch elves, goblins := m.FactionCount(Elf), m.FactionCount(Goblin); {
	case elves > 0 && goblins == 0:
		res.Winner = Elf.String()
	case goblins > 0 && elves == 0:
		res.Winner = Goblin.String()
	}
	for _, idx := range m.Agents() {
		row, col := m.Coordinate(idx)
		t := m.tiles[idx]
		res.Survivors = append(res.Survivors, Survivor{
			Index: idx, Row: row, Col: col, Faction: t.Faction.String(), HP: t.HP,
		})
	}
	return res
}

// PowerSearch parameterises SearchPower.
type PowerSearch struct {
	Faction    Faction
	StartPower int
	MaxPower   int
	// Workers is the number of consecutive powers tried concurrently.
	Workers int
	// RunToCompletion disables stopping a trial at the first loss.
	RunToCompletion bool
}

// DefaultPowerSearch tunes elves from one above the default power up to
// the default hit points, one trial at a time.
func DefaultPowerSearch() PowerSearch {
	return PowerSearch{
		Faction:    Elf,
		StartPower: config.DefaultAttackPower + 1,
		MaxPower:   config.DefaultHitPoints,
		Workers:    1,
	}
}

// NewPowerSearch converts the search section of the rules.
func NewPowerSearch(cfg config.SearchConfig) (PowerSearch, error) {
	f, err := ParseFaction(cfg.Faction)
	if err != nil {
		return PowerSearch{}, err
	}
	return PowerSearch{
		Faction:         f,
		StartPower:      cfg.StartPower,
		MaxPower:        cfg.MaxPower,
		Workers:         cfg.Workers,
		RunToCompletion: cfg.RunToCompletion,
	}, nil
}

type trialOutcome struct {
	res SimResult
	won bool
}

// SearchPower raises the attack power of search.Faction, starting at
// search.StartPower, until that faction wins with every starting agent alive.
// Each trial plays its own clone of m. With more than one worker, batches of
// consecutive powers run concurrently and the lowest winner of the first
// batch holding one is returned, so the answer matches a sequential scan.
// Emit callbacks are not forwarded to trials; WithRecord keeps the events of
// the winning trial.
func SearchPower(ctx context.Context, m *Map, powers AttackPowers, search PowerSearch, opts ...Option) (SimResult, error) {
	o := newOptions(opts)
	f := search.Faction
	if m.FactionCount(f) == 0 {
		return SimResult{}, fmt.Errorf("%w: no %s on the map", ErrNoAgents, f)
	}
	start := max(search.StartPower, 1)
	workers := max(search.Workers, 1)

	trial := o
	trial.emit = nil
	if !search.RunToCompletion {
		trial.watch = &f
	}

	for lo := start; lo <= search.MaxPower; lo += workers {
		hi := min(lo+workers-1, search.MaxPower)
		outcomes := make([]trialOutcome, hi-lo+1)

		g, gctx := errgroup.WithContext(ctx)
		for power := lo; power <= hi; power++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				p := powers.With(f, power)
				res, _, err := runTrial(m.Clone(), p, trial)
				if err != nil {
					return fmt.Errorf("power %d: %w", power, err)
				}
				won := res.Losses[f.String()] == 0 && res.Winner == f.String()
				o.logger.Info("trial finished", "faction", f, "power", power,
					"won", won, "rounds", res.Rounds)
				outcomes[power-lo] = trialOutcome{res: res, won: won}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return SimResult{}, err
		}

		for i, out := range outcomes {
			if !out.won {
				continue
			}
			res := out.res
			res.Mode = ModeSearch
			res.Trials = lo + i - start + 1
			o.logger.Info("search finished", "faction", f, "power", lo+i,
				"trials", res.Trials, "outcome", res.Outcome)
			return res, nil
		}
	}
	return SimResult{}, fmt.Errorf("%w: %s tried powers %d..%d", ErrNoWinningPower, f, start, search.MaxPower)
}

// PartOne scores input with the default balance.
func PartOne(input string) (uint64, error) {
	m, err := ParseMap(input)
	if err != nil {
		return 0, err
	}
	res, err := RunSingle(m, DefaultAttackPowers())
	if err != nil {
		return 0, err
	}
	return res.Outcome, nil
}

// PartTwo scores input at the lowest elf power that wins without losses.
func PartTwo(input string) (uint64, error) {
	m, err := ParseMap(input)
	if err != nil {
		return 0, err
	}
	res, err := SearchPower(context.Background(), m, DefaultAttackPowers(), DefaultPowerSearch())
	if err != nil {
		return 0, err
	}
	return res.Outcome, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
