package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcombat/internal/util"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := GenOptions{Width: 16, Height: 12, Elves: 5, Goblins: 6, WallDensity: 0.2}
	a := Generate(util.New(99), opts)
	b := Generate(util.New(99), opts)
	assert.Equal(t, a.String(), b.String())
	assert.NotPanics(t, a.checkRoster)

	reparsed, err := ParseMap(a.String())
	require.NoError(t, err)
	assert.Equal(t, a.Positions(Elf), reparsed.Positions(Elf))
	assert.Equal(t, a.Positions(Goblin), reparsed.Positions(Goblin))
}

func TestGenerateShape(t *testing.T) {
	m := Generate(util.New(3), GenOptions{Width: 10, Height: 8, Elves: 3, Goblins: 4, HitPoints: 50})
	assert.Equal(t, 10, m.Width())
	assert.Equal(t, 8, m.Height())
	assert.Equal(t, 3, m.FactionCount(Elf))
	assert.Equal(t, 4, m.FactionCount(Goblin))
	assert.Equal(t, 350, m.TotalHitPoints())
	for i := 0; i < m.Len(); i++ {
		row, col := m.Coordinate(i)
		if row == 0 || col == 0 || row == m.Height()-1 || col == m.Width()-1 {
			assert.Equal(t, Wall, m.Tile(i).Kind, "border cell %d", i)
		}
	}
}

func TestGenerateRunsOutOfRoom(t *testing.T) {
	m := Generate(util.New(1), GenOptions{Width: 4, Height: 4, Elves: 3, Goblins: 3})
	assert.Equal(t, 3, m.FactionCount(Elf))
	assert.Equal(t, 1, m.FactionCount(Goblin))

	tiny := Generate(util.New(1), GenOptions{Width: 1, Height: 1, Elves: 1})
	assert.Equal(t, 3, tiny.Width())
	assert.Equal(t, 1, tiny.FactionCount(Elf))
}

// Random arenas keep the tile/roster correspondence after every round and
// never gain hit points.
func TestRandomBattlesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		m := Generate(util.New(seed), GenOptions{Width: 12, Height: 9, Elves: 4, Goblins: 4, WallDensity: 0.15})
		b := NewBattle(m, DefaultAttackPowers().With(Elf, 3+int(seed%5)))
		hp := m.TotalHitPoints()
		for round := 0; round < 1000; round++ {
			completed := b.ExecuteRound()
			require.NotPanics(t, m.checkRoster, "seed %d", seed)
			now := m.TotalHitPoints()
			require.LessOrEqual(t, now, hp, "seed %d", seed)
			hp = now
			if !completed {
				break
			}
		}
	}
}
