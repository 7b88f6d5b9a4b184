package combat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func grid(rows ...string) string { return strings.Join(rows, "\n") }

func mustParse(t *testing.T, rows ...string) *Map {
	t.Helper()
	m, err := ParseMap(grid(rows...))
	require.NoError(t, err)
	return m
}

func panicValue(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// requireInvariant asserts that fn panics with an *InvariantError for op.
func requireInvariant(t *testing.T, op string, fn func()) {
	t.Helper()
	v := panicValue(fn)
	ie, ok := v.(*InvariantError)
	require.Truef(t, ok, "want *InvariantError panic, got %#v", v)
	require.Equal(t, op, ie.Op)
	require.ErrorIs(t, ie, ErrInvariant)
}

type agentHP struct {
	index int
	f     Faction
	hp    int
}

func agentsOf(m *Map) []agentHP {
	var out []agentHP
	for _, i := range m.Agents() {
		t := m.Tile(i)
		out = append(out, agentHP{i, t.Faction, t.HP})
	}
	return out
}

var mainExample = []string{
	"#######",
	"#.G...#",
	"#...EG#",
	"#.#.#G#",
	"#..G#E#",
	"#.....#",
	"#######",
}
