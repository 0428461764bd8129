package solver

import (
	"fmt"
	"sort"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/validator"
)

// NextMove returns the first valid value for the first empty cell, the move
// the recursive search would try next. Locally valid only; it is not
// search-verified.
func (s *Backtracking) NextMove(b *domain.Board) (domain.SolverMove, bool) {
	r, c, ok := findEmpty(b)
	if !ok {
		return domain.SolverMove{}, false
	}
	n := b.Size()
	for v := uint8(1); v <= uint8(n); v++ {
		if validator.PlacementValid(b, r, c, v) {
			return domain.SolverMove{
				Row:        r,
				Col:        c,
				Value:      v,
				Rationale:  fmt.Sprintf("first valid value for cell (%d,%d)", r+1, c+1),
				Strategy:   "backtracking",
				Confidence: 0.9,
			}, true
		}
	}
	return domain.SolverMove{}, false
}

// AllMoves enumerates every locally valid (cell, value) pair, ranked by a
// confidence heuristic that rewards tightly constrained cells and values
// that are hidden singles in their row, column, or box.
func (s *Backtracking) AllMoves(b *domain.Board) []domain.SolverMove {
	n := b.Size()
	moves := make([]domain.SolverMove, 0, 32)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Value(r, c) != 0 {
				continue
			}
			cands := validator.CandidatesFor(b, r, c)
			for _, v := range cands {
				moves = append(moves, domain.SolverMove{
					Row:        r,
					Col:        c,
					Value:      v,
					Rationale:  fmt.Sprintf("possible value %d for cell (%d,%d)", v, r+1, c+1),
					Strategy:   "backtracking",
					Confidence: moveConfidence(b, r, c, v, len(cands)),
				})
			}
		}
	}
	sortMoves(moves)
	return moves
}

// moveConfidence grades a candidate placement. A forced cell scores 1.0, a
// hidden single in any unit 0.95; otherwise the base 1/candidates score is
// damped by how crowded the cell is.
func moveConfidence(b *domain.Board, row, col int, v uint8, candidates int) float64 {
	if candidates == 1 {
		return 1.0
	}
	if hiddenInRow(b, row, col, v) || hiddenInCol(b, row, col, v) || hiddenInBox(b, row, col, v) {
		return 0.95
	}
	base := 1.0 / float64(candidates)
	switch candidates {
	case 2:
		return base * 0.8
	case 3:
		return base * 0.6
	default:
		return base * 0.5
	}
}

func hiddenInRow(b *domain.Board, row, col int, v uint8) bool {
	n := b.Size()
	for c := 0; c < n; c++ {
		if c != col && b.Value(row, c) == 0 && validator.PlacementValid(b, row, c, v) {
			return false
		}
	}
	return true
}

func hiddenInCol(b *domain.Board, row, col int, v uint8) bool {
	n := b.Size()
	for r := 0; r < n; r++ {
		if r != row && b.Value(r, col) == 0 && validator.PlacementValid(b, r, col, v) {
			return false
		}
	}
	return true
}

func hiddenInBox(b *domain.Board, row, col int, v uint8) bool {
	br, bc := b.BoxOrigin(row, col)
	for dr := 0; dr < b.Box; dr++ {
		for dc := 0; dc < b.Box; dc++ {
			r, c := br+dr, bc+dc
			if (r != row || c != col) && b.Value(r, c) == 0 && validator.PlacementValid(b, r, c, v) {
				return false
			}
		}
	}
	return true
}

// sortMoves orders by descending confidence, stable so that scan order
// breaks ties deterministically.
func sortMoves(moves []domain.SolverMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Confidence > moves[j].Confidence
	})
}
