package propagate

import (
	"fmt"
	"sort"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/validator"
)

// Confidence constants per strategy. These grade logical certainty: a naked
// single is forced, a hidden single is certain but costlier to see, a naked
// pair branch is speculative.
const (
	confNakedSingle  = 1.0
	confHiddenSingle = 0.95
	confNakedPair    = 0.7
)

// nakedSingles proposes every empty cell whose candidate set has shrunk to a
// single value.
func nakedSingles(b *domain.Board) []domain.SolverMove {
	n := b.Size()
	var moves []domain.SolverMove
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Value(r, c) != 0 {
				continue
			}
			cands := validator.CandidatesFor(b, r, c)
			if len(cands) == 1 {
				moves = append(moves, domain.SolverMove{
					Row:        r,
					Col:        c,
					Value:      cands[0],
					Rationale:  fmt.Sprintf("only possible value for cell (%d,%d)", r+1, c+1),
					Confidence: confNakedSingle,
				})
			}
		}
	}
	return moves
}

// hiddenSingles proposes, for each value, the unique cell in a row, column,
// or box that can still legally take it. The cell may have other candidates;
// the unit forces the value anyway.
func hiddenSingles(b *domain.Board) []domain.SolverMove {
	n := b.Size()
	var moves []domain.SolverMove

	for v := uint8(1); v <= uint8(n); v++ {
		// rows
		for r := 0; r < n; r++ {
			col := -1
			count := 0
			for c := 0; c < n; c++ {
				if b.Value(r, c) == 0 && validator.PlacementValid(b, r, c, v) {
					col = c
					count++
					if count > 1 {
						break
					}
				}
			}
			if count == 1 {
				moves = append(moves, domain.SolverMove{
					Row:        r,
					Col:        col,
					Value:      v,
					Rationale:  fmt.Sprintf("only cell in row %d that can contain %d", r+1, v),
					Confidence: confHiddenSingle,
				})
			}
		}
		// columns
		for c := 0; c < n; c++ {
			row := -1
			count := 0
			for r := 0; r < n; r++ {
				if b.Value(r, c) == 0 && validator.PlacementValid(b, r, c, v) {
					row = r
					count++
					if count > 1 {
						break
					}
				}
			}
			if count == 1 {
				moves = append(moves, domain.SolverMove{
					Row:        row,
					Col:        c,
					Value:      v,
					Rationale:  fmt.Sprintf("only cell in column %d that can contain %d", c+1, v),
					Confidence: confHiddenSingle,
				})
			}
		}
		// boxes
		for br := 0; br < b.Box; br++ {
			for bc := 0; bc < b.Box; bc++ {
				row, col := -1, -1
				count := 0
				for dr := 0; dr < b.Box && count <= 1; dr++ {
					for dc := 0; dc < b.Box; dc++ {
						r, c := br*b.Box+dr, bc*b.Box+dc
						if b.Value(r, c) == 0 && validator.PlacementValid(b, r, c, v) {
							row, col = r, c
							count++
							if count > 1 {
								break
							}
						}
					}
				}
				if count == 1 {
					moves = append(moves, domain.SolverMove{
						Row:        row,
						Col:        col,
						Value:      v,
						Rationale:  fmt.Sprintf("only cell in its box that can contain %d", v),
						Confidence: confHiddenSingle,
					})
				}
			}
		}
	}
	return moves
}

// nakedPairs proposes both candidates of any two-candidate cell as
// speculative moves. The classic peer-elimination effect of a naked pair is
// deliberately not performed here; the strategy stays a weak, low-confidence
// suggester.
func nakedPairs(b *domain.Board) []domain.SolverMove {
	n := b.Size()
	var moves []domain.SolverMove
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Value(r, c) != 0 {
				continue
			}
			cands := validator.CandidatesFor(b, r, c)
			if len(cands) == 2 {
				for _, v := range cands {
					moves = append(moves, domain.SolverMove{
						Row:        r,
						Col:        c,
						Value:      v,
						Rationale:  fmt.Sprintf("part of naked pair in cell (%d,%d)", r+1, c+1),
						Confidence: confNakedPair,
					})
				}
			}
		}
	}
	return moves
}

// pointingPairs is a placeholder for box/line reduction. It keeps its slot
// in the strategy order but never reports progress.
func pointingPairs(b *domain.Board) []domain.SolverMove {
	return nil
}

func sortMoves(moves []domain.SolverMove) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Confidence > moves[j].Confidence
	})
}
