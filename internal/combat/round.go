package combat

import "log/slog"

type battleState int

const (
	stateRunning battleState = iota
	stateEnded
)

// Battle runs rounds on a Map. It moves from running to ended once an agent
// finds no enemy left, or when a watched faction loses an agent.
type Battle struct {
	m      *Map
	powers AttackPowers
	state  battleState
	emit   func(Event)
	logger *slog.Logger
	watch  *Faction
	lost   bool

	stalled bool
	actions int
}

// NewBattle plays on m directly; callers that want to keep m clone it first.
func NewBattle(m *Map, powers AttackPowers, opts ...Option) *Battle {
	return newBattle(m, powers, newOptions(opts))
}

func newBattle(m *Map, powers AttackPowers, o options) *Battle {
	b := &Battle{m: m, powers: powers, logger: o.logger, watch: o.watch}
	b.emit = o.emit
	if b.emit == nil {
		b.emit = func(Event) {}
	}
	return b
}

func (b *Battle) Map() *Map { return b.m }

func (b *Battle) Powers() AttackPowers { return b.powers }

func (b *Battle) Running() bool { return b.state == stateRunning }

// Lost reports whether the watched faction lost an agent.
func (b *Battle) Lost() bool { return b.lost }

// Stalled reports that a full round passed with no attack and no move. The
// map can no longer change, so the battle was ended.
func (b *Battle) Stalled() bool { return b.stalled }

// ExecuteRound plays one round. It returns true when the round completed and
// false when combat ended during it, in which case the round is not counted.
func (b *Battle) ExecuteRound() bool {
	if b.state == stateEnded {
		return false
	}
	m := b.m
	round := m.rounds + 1
	if m.FactionCount(Elf) == 0 || m.FactionCount(Goblin) == 0 {
		b.end(round)
		return false
	}

	b.actions = 0
	acted := make([]bool, len(m.tiles))
	for _, idx := range m.Agents() {
		t := m.tiles[idx]
		if !t.IsAgent() || acted[idx] {
			continue
		}
		if m.FactionCount(t.Faction.Enemy()) == 0 {
			b.end(round)
			return false
		}
		b.act(idx, t.Faction, acted, round)
		if b.state == stateEnded {
			return false
		}
	}

	m.completeRound()
	b.emit(Event{Round: round, Type: EventRoundEnd, Payload: map[string]any{
		"elves":   m.FactionCount(Elf),
		"goblins": m.FactionCount(Goblin),
	}})
	b.logger.Debug("round complete", "round", round,
		"elves", m.FactionCount(Elf), "goblins", m.FactionCount(Goblin))
	if b.actions == 0 {
		b.stalled = true
		b.end(round + 1)
	}
	return true
}

// Run plays rounds until combat ends and returns the completed round count.
func (b *Battle) Run() int {
	for b.ExecuteRound() {
	}
	return b.m.rounds
}

func (b *Battle) act(idx int, f Faction, acted []bool, round int) {
	if target, ok := b.m.NearestEnemy(idx, f); ok {
		acted[idx] = true
		b.attack(idx, target, f, round)
		return
	}

	step, ok := b.chooseStep(idx, f)
	if !ok {
		return
	}
	b.m.MoveAgent(idx, step)
	acted[step] = true
	b.actions++
	b.emit(Event{Round: round, Type: EventMove, Payload: map[string]any{
		"faction": f.String(), "from": idx, "to": step,
	}})
	b.logger.Debug("move", "round", round, "faction", f, "from", idx, "to", step)

	if target, ok := b.m.NearestEnemy(step, f); ok {
		b.attack(step, target, f, round)
	}
}

// chooseStep picks the open neighbour that starts the shortest path to any
// enemy. Ties go to the path whose last cell is first in reading order, then
// to the earlier neighbour.
func (b *Battle) chooseStep(idx int, f Faction) (int, bool) {
	moves := b.m.Neighbors(idx, true)
	if len(moves) == 0 {
		return 0, false
	}
	enemies := b.m.Positions(f.Enemy())
	best := PathResult{Last: -1, Len: Unreachable}
	for _, mv := range moves {
		for _, e := range enemies {
			if manhattan(mv, e, b.m.width) > best.Len {
				continue
			}
			p := shortestStepWithin(b.m, mv, e, best.Len)
			if !p.Reachable() {
				continue
			}
			if p.Len < best.Len || (p.Len == best.Len && p.Last < best.Last) {
				best = p
			}
		}
	}
	return best.Next, best.Reachable()
}

func (b *Battle) attack(from, target int, f Faction, round int) {
	b.actions++
	power := b.powers.Of(f)
	killed := b.m.ApplyDamage(target, power)
	hp := 0
	if !killed {
		hp = b.m.tiles[target].HP
	}
	b.emit(Event{Round: round, Type: EventAttack, Payload: map[string]any{
		"faction": f.String(), "from": from, "target": target, "damage": power, "hp": hp,
	}})
	b.logger.Debug("attack", "round", round, "faction", f, "from", from,
		"target", target, "damage", power, "hp", hp)
	if !killed {
		return
	}

	b.emit(Event{Round: round, Type: EventKill, Payload: map[string]any{
		"faction": f.Enemy().String(), "index": target,
	}})
	if b.watch != nil && *b.watch == f.Enemy() {
		b.lost = true
		b.end(round)
	}
}

// end stops the battle and verifies the map before it is scored.
func (b *Battle) end(round int) {
	if b.state == stateEnded {
		return
	}
	b.state = stateEnded
	b.emit(Event{Round: round, Type: EventCombatEnd, Payload: map[string]any{
		"completed_rounds": b.m.rounds,
		"elves":            b.m.FactionCount(Elf),
		"goblins":          b.m.FactionCount(Goblin),
		"hit_points":       b.m.TotalHitPoints(),
	}})
	b.m.checkRoster()
}
