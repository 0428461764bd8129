// Package validator holds the row/column/box uniqueness predicates every
// solver and the generator prune against. All functions are total over any
// board shape and never mutate their input.
package validator

import (
	"context"

	"svw.info/sudokulab/internal/domain"
)

// PlacementValid reports whether value v could sit at (r,c) without
// duplicating a value already present in the same row, column, or box.
// The target cell itself is skipped, so probing an occupied cell works.
func PlacementValid(b *domain.Board, r, c int, v uint8) bool {
	n := b.Size()
	for i := 0; i < n; i++ {
		if i != c && b.Value(r, i) == v {
			return false
		}
		if i != r && b.Value(i, c) == v {
			return false
		}
	}
	br, bc := b.BoxOrigin(r, c)
	for dr := 0; dr < b.Box; dr++ {
		for dc := 0; dc < b.Box; dc++ {
			rr, cc := br+dr, bc+dc
			if (rr != r || cc != c) && b.Value(rr, cc) == v {
				return false
			}
		}
	}
	return true
}

// CandidatesFor derives the legal values for an empty cell by probing every
// value through PlacementValid. An occupied cell has no candidates.
func CandidatesFor(b *domain.Board, r, c int) []uint8 {
	if b.Value(r, c) != 0 {
		return nil
	}
	n := b.Size()
	out := make([]uint8, 0, n)
	for v := uint8(1); v <= uint8(n); v++ {
		if PlacementValid(b, r, c, v) {
			out = append(out, v)
		}
	}
	return out
}

// BoardValid reports whether no row, column, or box contains a duplicate
// nonzero value.
func BoardValid(b *domain.Board) bool {
	return len(Conflicts(b)) == 0
}

// Conflicts scans every row, column, and box and returns the cells holding a
// value already seen earlier in the same unit.
func Conflicts(b *domain.Board) []domain.CellCoord {
	n := b.Size()
	conf := make([]domain.CellCoord, 0, 8)
	// rows
	for r := 0; r < n; r++ {
		var m uint64
		for c := 0; c < n; c++ {
			v := b.Value(r, c)
			if v == 0 {
				continue
			}
			bit := uint64(1) << v
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// cols
	for c := 0; c < n; c++ {
		var m uint64
		for r := 0; r < n; r++ {
			v := b.Value(r, c)
			if v == 0 {
				continue
			}
			bit := uint64(1) << v
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// boxes
	for br := 0; br < b.Box; br++ {
		for bc := 0; bc < b.Box; bc++ {
			var m uint64
			for dr := 0; dr < b.Box; dr++ {
				for dc := 0; dc < b.Box; dc++ {
					r := br*b.Box + dr
					c := bc*b.Box + dc
					v := b.Value(r, c)
					if v == 0 {
						continue
					}
					bit := uint64(1) << v
					if m&bit != 0 {
						conf = append(conf, domain.CellCoord{Row: r, Col: c})
					}
					m |= bit
				}
			}
		}
	}
	return conf
}

// FastValidator adapts the package predicates to the ports.Validator shape
// used by the service layer.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	conf := Conflicts(b)
	return len(conf) == 0, conf, nil
}
