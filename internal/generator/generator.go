// Package generator builds complete grids by randomized backtracking and
// carves them into puzzles while a solution-counting oracle confirms a
// unique completion after every removal.
package generator

import (
	"errors"

	"svw.info/sudokulab/internal/ports"
)

// ErrUnderTarget is returned when carving could not clear at least half the
// difficulty's removal target while keeping the puzzle uniquely solvable.
// Callers decide whether to retry, lower the target, or accept a canned
// puzzle.
var ErrUnderTarget = errors.New("carved fewer than half the target cells")

// Unique carves puzzles whose single solution is certified by the counter
// after every removal.
type Unique struct {
	Counter ports.Counter
}

// NewUnique wires a generator that uses the given counting solver for
// uniqueness checks.
func NewUnique(c ports.Counter) *Unique {
	return &Unique{Counter: c}
}
