package combat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid indicates that the input has no rows or an empty first row.
	ErrEmptyGrid = errors.New("combat: input grid must have at least one row and one column")

	// ErrNonRectangular indicates that a row differs in length from the first.
	ErrNonRectangular = errors.New("combat: all rows must have the same length")

	// ErrUnknownTile indicates a character other than '#', '.', 'E' or 'G'.
	ErrUnknownTile = errors.New("combat: unknown tile character")

	ErrUnknownFaction = errors.New("combat: unknown faction")

	// ErrInvariant is wrapped by every InvariantError.
	ErrInvariant = errors.New("combat: internal consistency violation")

	// ErrNoWinningPower is returned when no power up to the search maximum
	// lets the tunable faction win without losses.
	ErrNoWinningPower = errors.New("combat: no attack power wins without losses")

	// ErrStalemate is returned when a round passes in which no agent can
	// attack or move, so the battle would never end.
	ErrStalemate = errors.New("combat: stalemate, no agent can reach an enemy")

	// ErrNoAgents is returned when a simulation has nobody to run.
	ErrNoAgents = errors.New("combat: no agents to simulate")
)

// InvariantError describes a Map operation applied to a tile that cannot
// take it. Map panics with a *InvariantError; the drivers recover it.
type InvariantError struct {
	Op    string
	Index int
	Tile  Tile
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s at index %d (%s)", ErrInvariant, e.Op, e.Index, e.Tile)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func violate(op string, index int, t Tile) {
	panic(&InvariantError{Op: op, Index: index, Tile: t})
}

// recoverInvariant must be deferred directly. It turns an InvariantError
// panic into *err and re-panics anything else.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*InvariantError)
	if !ok {
		panic(r)
	}
	*err = ie
}
