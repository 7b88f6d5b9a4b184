package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	m := mustParse(t,
		"#.#",
		".E.",
		"#.#",
	)
	cases := []struct {
		name     string
		index    int
		openOnly bool
		want     []int
	}{
		{"top left corner", 0, false, []int{1, 3}},
		{"top right corner", 2, false, []int{1, 5}},
		{"bottom right corner", 8, false, []int{5, 7}},
		{"centre", 4, false, []int{1, 3, 5, 7}},
		{"centre open", 4, true, []int{1, 3, 5, 7}},
		{"top edge", 1, false, []int{0, 2, 4}},
		{"top edge open", 1, true, []int{}},
		{"left edge open", 3, true, []int{}},
		{"corner open", 0, true, []int{1, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Neighbors(tc.index, tc.openOnly))
		})
	}
}

func TestNeighborsDoNotWrap(t *testing.T) {
	m := mustParse(t, "....", "....")
	assert.Equal(t, []int{2, 7}, m.Neighbors(3, false))
	assert.Equal(t, []int{0, 5}, m.Neighbors(4, false))
}

func TestNearestEnemyTies(t *testing.T) {
	m := mustParse(t,
		".G.",
		"GEG",
		".G.",
	)
	idx, ok := m.NearestEnemy(4, Elf)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "equal HP goes to the cell above")
	again, ok := m.NearestEnemy(4, Elf)
	require.True(t, ok)
	assert.Equal(t, idx, again, "repeated lookups agree")
	assert.Equal(t, 200, m.HitPoints(idx))

	m.ApplyDamage(5, 3)
	m.ApplyDamage(7, 3)
	idx, _ = m.NearestEnemy(4, Elf)
	assert.Equal(t, 5, idx, "right comes before down")

	m.ApplyDamage(7, 1)
	idx, _ = m.NearestEnemy(4, Elf)
	assert.Equal(t, 7, idx)

	idx, ok = m.NearestEnemy(1, Goblin)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	_, ok = m.NearestEnemy(0, Goblin)
	assert.False(t, ok)
	_, ok = m.NearestEnemy(4, Goblin)
	assert.False(t, ok, "allies are not enemies")
}

func TestApplyDamage(t *testing.T) {
	m := mustParse(t, "#EG#")
	assert.False(t, m.ApplyDamage(2, 199))
	assert.Equal(t, 1, m.HitPoints(2))
	assert.Equal(t, 201, m.TotalHitPoints())

	assert.True(t, m.ApplyDamage(2, 1))
	assert.Equal(t, Open, m.Tile(2).Kind)
	assert.Equal(t, 0, m.FactionCount(Goblin))
	assert.Empty(t, m.Positions(Goblin))
	assert.Equal(t, 200, m.TotalHitPoints())
	assert.Equal(t, 1, m.InitialCount(Goblin))

	assert.True(t, m.ApplyDamage(1, 500), "overkill removes the agent")
	assert.Equal(t, "#..#\n", m.String())
	assert.NotPanics(t, m.checkRoster)
}

func TestMoveAgent(t *testing.T) {
	m := mustParse(t,
		"#####",
		"#E.G#",
		"#####",
	)
	m.ApplyDamage(6, 10)
	m.MoveAgent(6, 7)
	assert.Equal(t, Open, m.Tile(6).Kind)
	assert.Equal(t, Tile{Kind: Agent, Faction: Elf, HP: 190}, m.Tile(7))
	assert.Equal(t, []int{7}, m.Positions(Elf))
	assert.NotPanics(t, m.checkRoster)
}

func TestMapContractViolations(t *testing.T) {
	m := mustParse(t, "#E.G#")
	requireInvariant(t, "apply damage", func() { m.ApplyDamage(0, 3) })
	requireInvariant(t, "apply damage", func() { m.ApplyDamage(2, 3) })
	requireInvariant(t, "read hit points", func() { m.HitPoints(2) })
	requireInvariant(t, "move from", func() { m.MoveAgent(2, 1) })
	requireInvariant(t, "move into", func() { m.MoveAgent(1, 0) })
	requireInvariant(t, "move into", func() { m.MoveAgent(3, 1) })

	// a failed move leaves both sides untouched
	assert.Equal(t, []int{1}, m.Positions(Elf))
	assert.Equal(t, []int{3}, m.Positions(Goblin))
	assert.NotPanics(t, m.checkRoster)
}

func TestRosterMismatchIsDetected(t *testing.T) {
	m := mustParse(t, "#E.G#")
	m.roster.add(Elf, 0)
	requireInvariant(t, "total hit points", func() { m.TotalHitPoints() })
	requireInvariant(t, "roster size", m.checkRoster)
}

func TestClone(t *testing.T) {
	m := mustParse(t, mainExample...)
	c := m.Clone()
	c.ApplyDamage(18, 50)
	c.MoveAgent(9, 8)
	c.completeRound()

	assert.Equal(t, 200, m.HitPoints(18))
	assert.Equal(t, []int{9, 19, 26, 31}, m.Positions(Goblin))
	assert.Equal(t, 0, m.Rounds())
	assert.Equal(t, grid(mainExample...)+"\n", m.String())

	assert.Equal(t, 150, c.HitPoints(18))
	assert.Equal(t, []int{8, 19, 26, 31}, c.Positions(Goblin))
	assert.Equal(t, 1, c.Rounds())
	assert.Equal(t, m.InitialCount(Goblin), c.InitialCount(Goblin))
}

func TestCoordinate(t *testing.T) {
	m := mustParse(t, mainExample...)
	row, col := m.Coordinate(33)
	assert.Equal(t, 4, row)
	assert.Equal(t, 5, col)
}
