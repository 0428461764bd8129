// Package propagate emulates human deductive solving: an ordered table of
// logic strategies, applied weakest-first, with no branching search. It is
// both a first-pass solver and the hint engine behind the move endpoints.
package propagate

import (
	"context"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/validator"
)

// strategy scans a board and proposes zero or more moves without applying
// them. The table order is fixed and small, so it is a plain slice of
// function values rather than an open plugin interface.
type strategy struct {
	name string
	scan func(b *domain.Board) []domain.SolverMove
}

// Solver applies deduction strategies until the board is solved or none of
// them makes progress.
type Solver struct {
	strategies []strategy
}

func New() *Solver {
	return &Solver{
		strategies: []strategy{
			{name: "naked single", scan: nakedSingles},
			{name: "hidden single", scan: hiddenSingles},
			{name: "naked pair", scan: nakedPairs},
			{name: "pointing pair", scan: pointingPairs},
		},
	}
}

// SolveLogic mutates b in place, one deduced move at a time. After every
// applied move the strategy scan restarts from the top so the cheapest
// deductions are always retried first. Solved=false with no moves pending is
// the "no progress" outcome: the puzzle may still be solvable by search, so
// it is a result, not an error.
func (s *Solver) SolveLogic(ctx context.Context, b *domain.Board) (bool, []domain.SolverMove, ports.Stats) {
	start := time.Now()
	applied := make([]domain.SolverMove, 0, 16)
	nodes := 0

	for !b.IsComplete() {
		if ctx.Err() != nil {
			break
		}
		progress := false
		for _, st := range s.strategies {
			moves := st.scan(b)
			nodes++
			if len(moves) == 0 {
				continue
			}
			mv := moves[0]
			mv.Strategy = st.name
			b.SetValue(mv.Row, mv.Col, mv.Value)
			applied = append(applied, mv)
			progress = true
			break
		}
		if !progress {
			break
		}
	}
	solved := b.IsComplete() && validator.BoardValid(b)
	return solved, applied, ports.Stats{Nodes: nodes, Duration: time.Since(start)}
}

// AllMoves runs every strategy against a copy of the board, tags each move
// with the strategy that produced it, and returns the aggregate sorted by
// descending confidence.
func (s *Solver) AllMoves(b *domain.Board) []domain.SolverMove {
	work := b.Clone()
	all := make([]domain.SolverMove, 0, 32)
	for _, st := range s.strategies {
		for _, mv := range st.scan(work) {
			mv.Strategy = st.name
			all = append(all, mv)
		}
	}
	sortMoves(all)
	return all
}

// NextMove returns the highest-confidence deduced move, if any.
func (s *Solver) NextMove(b *domain.Board) (domain.SolverMove, bool) {
	moves := s.AllMoves(b)
	if len(moves) == 0 {
		return domain.SolverMove{}, false
	}
	return moves[0], true
}
