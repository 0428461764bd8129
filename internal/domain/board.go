package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Board is a generalized Sudoku board. Box is the side length of one
// sub-block (3 for classic Sudoku); the board is Box*Box cells on a side.
//
// The board owns its cells outright. Components that explore speculatively
// work on a Clone; in-place mutation is reserved for callers that own the
// board.
type Board struct {
	Box   int
	Cells [][]Cell
	Fixed [][]bool
}

// NewBoard returns an all-empty board with sub-blocks of side box.
func NewBoard(box int) *Board {
	n := box * box
	cells := make([][]Cell, n)
	fixed := make([][]bool, n)
	for r := 0; r < n; r++ {
		cells[r] = make([]Cell, n)
		fixed[r] = make([]bool, n)
	}
	return &Board{Box: box, Cells: cells, Fixed: fixed}
}

// FromValues builds a board from a plain value grid; nonzero cells are
// marked as givens.
func FromValues(box int, values [][]uint8) (*Board, error) {
	n := box * box
	if len(values) != n {
		return nil, fmt.Errorf("board: want %d rows, got %d", n, len(values))
	}
	b := NewBoard(box)
	for r := 0; r < n; r++ {
		if len(values[r]) != n {
			return nil, fmt.Errorf("board: row %d has %d cells, want %d", r, len(values[r]), n)
		}
		for c := 0; c < n; c++ {
			v := values[r][c]
			if v > uint8(n) {
				return nil, fmt.Errorf("board: value %d at (%d,%d) out of range 0..%d", v, r, c, n)
			}
			b.Cells[r][c].Value = v
			b.Fixed[r][c] = v != 0
		}
	}
	return b, nil
}

// Size is the side length of the whole board (Box squared).
func (b *Board) Size() int { return b.Box * b.Box }

func (b *Board) Value(r, c int) uint8       { return b.Cells[r][c].Value }
func (b *Board) SetValue(r, c int, v uint8) { b.Cells[r][c].Value = v }

// BoxOrigin returns the top-left coordinate of the sub-block containing (r,c).
func (b *Board) BoxOrigin(r, c int) (int, int) {
	return (r / b.Box) * b.Box, (c / b.Box) * b.Box
}

// IsComplete reports whether every cell holds a value. It says nothing about
// validity.
func (b *Board) IsComplete() bool {
	n := b.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Cells[r][c].Value == 0 {
				return false
			}
		}
	}
	return true
}

// CountGivens counts nonzero cells.
func (b *Board) CountGivens() int {
	n := b.Size()
	count := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Cells[r][c].Value != 0 {
				count++
			}
		}
	}
	return count
}

// Clone deep-copies the board, cells and candidate slices included.
func (b *Board) Clone() *Board {
	n := b.Size()
	out := &Board{Box: b.Box, Cells: make([][]Cell, n), Fixed: make([][]bool, n)}
	for r := 0; r < n; r++ {
		out.Cells[r] = make([]Cell, n)
		out.Fixed[r] = make([]bool, n)
		copy(out.Fixed[r], b.Fixed[r])
		for c := 0; c < n; c++ {
			cell := b.Cells[r][c]
			cp := Cell{Value: cell.Value}
			if len(cell.Candidates) > 0 {
				cp.Candidates = append([]uint8(nil), cell.Candidates...)
			}
			out.Cells[r][c] = cp
		}
	}
	return out
}

// Values flattens the board into a plain value grid.
func (b *Board) Values() [][]uint8 {
	n := b.Size()
	out := make([][]uint8, n)
	for r := 0; r < n; r++ {
		out[r] = make([]uint8, n)
		for c := 0; c < n; c++ {
			out[r][c] = b.Cells[r][c].Value
		}
	}
	return out
}

// boardJSON is the persisted shape: candidates are advisory and are not
// round-tripped.
type boardJSON struct {
	Box    int       `json:"box"`
	Values [][]uint8 `json:"values"`
	Fixed  [][]bool  `json:"fixed,omitempty"`
}

func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Box: b.Box, Values: b.Values(), Fixed: b.Fixed})
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Box < 2 {
		return errors.New("board: missing or invalid box size")
	}
	nb, err := FromValues(raw.Box, raw.Values)
	if err != nil {
		return err
	}
	if len(raw.Fixed) == len(nb.Fixed) {
		for r := range raw.Fixed {
			if len(raw.Fixed[r]) == len(nb.Fixed[r]) {
				copy(nb.Fixed[r], raw.Fixed[r])
			}
		}
	}
	*b = *nb
	return nil
}

// ParseGrid reads a board from a flat string of cell digits in row-major
// order, with '0' or '.' for empty cells. Only single-digit boards (box 2
// and 3) have such a textual form.
func ParseGrid(box int, s string) (*Board, error) {
	if box != 2 && box != 3 {
		return nil, fmt.Errorf("board: no single-digit text form for box size %d", box)
	}
	n := box * box
	cells := make([]uint8, 0, n*n)
	for _, ch := range s {
		switch {
		case ch == '.':
			cells = append(cells, 0)
		case ch >= '0' && ch <= '9':
			cells = append(cells, uint8(ch-'0'))
		case ch == ' ' || ch == '\n' || ch == '\t' || ch == '\r' || ch == '|' || ch == '-' || ch == '+':
			// layout characters are ignored
		default:
			return nil, fmt.Errorf("board: unexpected character %q in grid", ch)
		}
	}
	if len(cells) != n*n {
		return nil, fmt.Errorf("board: want %d cells, got %d", n*n, len(cells))
	}
	values := make([][]uint8, n)
	for r := 0; r < n; r++ {
		values[r] = cells[r*n : (r+1)*n]
	}
	return FromValues(box, values)
}
