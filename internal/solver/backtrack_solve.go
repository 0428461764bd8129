package solver

import (
	"context"
	"fmt"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/validator"
)

// Solve searches for a completion of b and returns it as a new board; the
// caller's board is never touched. A board that is already constraint-invalid
// on entry fails without searching.
func (s *Backtracking) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	if !validator.BoardValid(b) {
		return nil, ports.Stats{Duration: time.Since(start)}, fmt.Errorf("solve: board invalid on entry: %w", ErrNoSolution)
	}

	work := b.Clone()
	n := work.Size()
	nodes := 0
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(work)
		if !ok {
			return true
		}
		for v := uint8(1); v <= uint8(n); v++ {
			nodes++
			if validator.PlacementValid(work, r, c, v) {
				work.SetValue(r, c, v)
				if dfs() {
					return true
				}
				work.SetValue(r, c, 0)
			}
		}
		return false
	}
	if !dfs() {
		st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
		if err := ctx.Err(); err != nil {
			return nil, st, fmt.Errorf("solve: %w", err)
		}
		return nil, st, ErrNoSolution
	}
	return work, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
