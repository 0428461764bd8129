package solver

import (
	"errors"

	"svw.info/sudokulab/internal/domain"
)

// ErrNoSolution is returned when exhaustive search proves the board has no
// completion. It is an expected outcome, not an exceptional one.
var ErrNoSolution = errors.New("no solution")

// Backtracking is a straightforward recursive solver: first empty cell in
// row-major order, values tried ascending, validator as the pruning oracle,
// value-based undo. No cell-ordering heuristic beyond "first empty".
type Backtracking struct{}

func NewBacktracking() *Backtracking { return &Backtracking{} }

func findEmpty(b *domain.Board) (int, int, bool) {
	n := b.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Value(r, c) == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
