package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMap(t *testing.T) {
	m := mustParse(t, mainExample...)
	assert.Equal(t, 7, m.Width())
	assert.Equal(t, 7, m.Height())
	assert.Equal(t, 49, m.Len())
	assert.Equal(t, 2, m.FactionCount(Elf))
	assert.Equal(t, 4, m.FactionCount(Goblin))
	assert.Equal(t, 2, m.InitialCount(Elf))
	assert.Equal(t, 4, m.InitialCount(Goblin))
	assert.Equal(t, []int{18, 33}, m.Positions(Elf))
	assert.Equal(t, []int{9, 19, 26, 31}, m.Positions(Goblin))
	assert.Equal(t, 200, m.HitPoints(18))
	assert.Equal(t, 0, m.Rounds())
	assert.Equal(t, grid(mainExample...)+"\n", m.String())
}

func TestParseMapNormalisesInput(t *testing.T) {
	m, err := ParseMap("\n\n  #.E#\r\n#G.#\r\n\n")
	require.NoError(t, err)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, "#.E#\n#G.#\n", m.String())
}

func TestParseMapHitPoints(t *testing.T) {
	m, err := ParseMap(grid("#EG#"), WithHitPoints(17))
	require.NoError(t, err)
	assert.Equal(t, 17, m.HitPoints(1))
	assert.Equal(t, 34, m.TotalHitPoints())

	m, err = ParseMap(grid("#EG#"), WithHitPoints(-5))
	require.NoError(t, err)
	assert.Equal(t, 200, m.HitPoints(2))
}

func TestParseMapErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyGrid},
		{"blank", " \n\t\n ", ErrEmptyGrid},
		{"short row", "####\n#.#\n####", ErrNonRectangular},
		{"long row", "###\n#..#\n###", ErrNonRectangular},
		{"unknown char", "###\n#X#\n###", ErrUnknownTile},
		{"lowercase agent", "###\n#e#\n###", ErrUnknownTile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseMap(tc.input)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, m)
		})
	}
}

func TestParseFaction(t *testing.T) {
	f, err := ParseFaction(" Goblin ")
	require.NoError(t, err)
	assert.Equal(t, Goblin, f)

	f, err = ParseFaction("ELF")
	require.NoError(t, err)
	assert.Equal(t, Elf, f)

	_, err = ParseFaction("orc")
	assert.ErrorIs(t, err, ErrUnknownFaction)
}
