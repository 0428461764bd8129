package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
)

// DLX implements Algorithm X / Dancing Links over the exact-cover mapping of
// a size-N Sudoku: 4*N*N constraint columns and N*N*N candidate rows.
// Columns, in blocks of N*N:
//
//	block 0 -> cell (r,c) is filled
//	block 1 -> row r has value v
//	block 2 -> col c has value v
//	block 3 -> box b has value v, b = (r/k)*k + c/k
//
// It is the fast alternative to Backtracking for plain solving; the
// generator keeps using the plain search for its counting oracle.
type DLX struct{}

func NewDLX() *DLX { return &DLX{} }

type dlxNode struct {
	left, right, up, down *dlxNode
	col                   *dlxColumn
	rowIdx                int
}

type dlxColumn struct {
	dlxNode
	size   int
	name   int
	active bool
}

type dlxMatrix struct {
	n         int // board side length
	box       int
	cols      []*dlxColumn
	rowHead   []*dlxNode
	sol       []*dlxNode
	solLen    int
	nodes     int
	activeCnt int
}

func newDLXMatrix(box int) *dlxMatrix {
	n := box * box
	cells := n * n
	nCols := 4 * cells
	nRows := cells * n

	d := &dlxMatrix{
		n:       n,
		box:     box,
		cols:    make([]*dlxColumn, nCols),
		rowHead: make([]*dlxNode, nRows),
		sol:     make([]*dlxNode, nRows),
	}
	for i := 0; i < nCols; i++ {
		c := &dlxColumn{name: i, active: true}
		c.up = &c.dlxNode
		c.down = &c.dlxNode
		d.cols[i] = c
	}
	d.activeCnt = nCols

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for v := 1; v <= n; v++ {
				row := d.rowIndex(r, c, v)
				var first, prev *dlxNode
				for _, colID := range d.rowColumns(r, c, v) {
					col := d.cols[colID]
					nd := &dlxNode{col: col, rowIdx: row}
					// vertical insert at the bottom of the column
					nd.down = &col.dlxNode
					nd.up = col.dlxNode.up
					col.dlxNode.up.down = nd
					col.dlxNode.up = nd
					col.size++
					// horizontal ring for the 4 nodes of the row
					if first == nil {
						first = nd
						nd.left = nd
						nd.right = nd
					} else {
						nd.left = prev
						nd.right = prev.right
						prev.right.left = nd
						prev.right = nd
					}
					prev = nd
				}
				d.rowHead[row] = first
			}
		}
	}
	return d
}

func (d *dlxMatrix) rowIndex(r, c, v int) int {
	return (r*d.n+c)*d.n + (v - 1)
}

func (d *dlxMatrix) rowColumns(r, c, v int) [4]int {
	cells := d.n * d.n
	cell := r*d.n + c
	box := (r/d.box)*d.box + c/d.box
	return [4]int{
		cell,
		cells + r*d.n + (v - 1),
		2*cells + c*d.n + (v - 1),
		3*cells + box*d.n + (v - 1),
	}
}

func (d *dlxMatrix) decodeRow(row int) (r, c, v int) {
	cell := row / d.n
	v = (row % d.n) + 1
	r = cell / d.n
	c = cell % d.n
	return
}

func (d *dlxMatrix) cover(col *dlxColumn) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.dlxNode; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlxMatrix) uncover(col *dlxColumn) {
	for i := col.up; i != &col.dlxNode; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// chooseColumn picks the active column with the fewest candidates.
func (d *dlxMatrix) chooseColumn() *dlxColumn {
	var best *dlxColumn
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

func (d *dlxMatrix) search(ctx context.Context, k, wantCount int, found *int) bool {
	select {
	case <-ctx.Done():
		return true // stop search
	default:
	}
	if d.activeCnt == 0 {
		d.solLen = k
		(*found)++
		return wantCount > 0 && *found >= wantCount
	}

	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.dlxNode; r = r.down {
		d.nodes++
		d.sol[k] = r
		for j := r.right; j != r; j = j.right {
			if j.col.active {
				d.cover(j.col)
			}
		}
		if d.search(ctx, k+1, wantCount, found) {
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}

// applyGiven selects the row for a fixed placement and covers its columns, as
// if the search had chosen it at the top level.
func (d *dlxMatrix) applyGiven(r, c, v int) error {
	head := d.rowHead[d.rowIndex(r, c, v)]
	if head == nil {
		return errors.New("dlx: invalid row mapping")
	}
	for j := head; ; j = j.right {
		d.cover(j.col)
		if j.right == head {
			break
		}
	}
	return nil
}

func (d *dlxMatrix) loadGivens(b *domain.Board) error {
	n := b.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if v := int(b.Value(r, c)); v > 0 {
				if v > n {
					return fmt.Errorf("dlx: given %d at (%d,%d) out of range", v, r, c)
				}
				if err := d.applyGiven(r, c, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *DLX) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	d := newDLXMatrix(b.Box)
	if err := d.loadGivens(b); err != nil {
		return nil, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, 1, &found)
	st := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if found < 1 {
		if err := ctx.Err(); err != nil {
			return nil, st, fmt.Errorf("dlx: %w", err)
		}
		return nil, st, ErrNoSolution
	}
	// givens were covered outside the search, so start from the input board
	// and fill in the chosen rows
	out := b.Clone()
	for i := 0; i < d.solLen; i++ {
		r, c, v := d.decodeRow(d.sol[i].rowIdx)
		out.SetValue(r, c, uint8(v))
	}
	return out, st, nil
}

// CountSolutions counts completions via exact cover, stopping at limit.
func (s *DLX) CountSolutions(ctx context.Context, b *domain.Board, limit int) (int, ports.Stats) {
	start := time.Now()
	d := newDLXMatrix(b.Box)
	if err := d.loadGivens(b); err != nil {
		return 0, ports.Stats{Duration: time.Since(start)}
	}
	found := 0
	_ = d.search(ctx, 0, limit, &found)
	return found, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
}
