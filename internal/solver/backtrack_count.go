package solver

import (
	"context"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/validator"
)

// CountSolutions counts complete assignments of b, stopping as soon as the
// count reaches limit. A limit <= 0 counts exhaustively. The search is the
// same one Solve runs, with a counter at the leaves instead of a result.
func (s *Backtracking) CountSolutions(ctx context.Context, b *domain.Board, limit int) (int, ports.Stats) {
	start := time.Now()
	if !validator.BoardValid(b) {
		return 0, ports.Stats{Duration: time.Since(start)}
	}

	work := b.Clone()
	n := work.Size()
	nodes := 0
	count := 0

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return true // abandon the search
		}
		r, c, ok := findEmpty(work)
		if !ok {
			count++
			return limit > 0 && count >= limit
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
	_ = dfs()
	return count, ports.Stats{Nodes: nodes, Duration: time.Since(start)}
}

// Unique reports whether b has exactly one completion, counting up to 2.
func (s *Backtracking) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats) {
	count, st := s.CountSolutions(ctx, b, 2)
	return count == 1, st
}
