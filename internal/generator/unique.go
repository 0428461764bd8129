package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/validator"
)

// CompleteGrid fills an all-empty board of the given box size into a full
// valid grid. The search is the plain backtracking solver with one change:
// the value trial order at each cell is shuffled, so repeated calls yield
// varied grids instead of the canonical one. Validity pruning and recursion
// structure are untouched, so the soundness argument carries over.
func (g *Unique) CompleteGrid(ctx context.Context, rng *rand.Rand, box int) (*domain.Board, error) {
	b := domain.NewBoard(box)
	if !g.fill(ctx, rng, b) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("complete grid: %w", err)
		}
		return nil, fmt.Errorf("complete grid: fill failed for box size %d", box)
	}
	return b, nil
}

func (g *Unique) fill(ctx context.Context, rng *rand.Rand, b *domain.Board) bool {
	if ctx.Err() != nil {
		return false
	}
	r, c, ok := findEmpty(b)
	if !ok {
		return true
	}
	n := b.Size()
	values := make([]uint8, n)
	for i := range values {
		values[i] = uint8(i + 1)
	}
	rng.Shuffle(n, func(i, j int) { values[i], values[j] = values[j], values[i] })
	for _, v := range values {
		if validator.PlacementValid(b, r, c, v) {
			b.SetValue(r, c, v)
			if g.fill(ctx, rng, b) {
				return true
			}
			b.SetValue(r, c, 0)
		}
	}
	return false
}

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

// Carve turns a complete grid into a puzzle in place. Coordinates are
// visited in shuffled order; each cell is tentatively cleared and stays
// cleared only if the solution counter still reports exactly one completion.
// Carving stops at the difficulty's removal target or when every coordinate
// has been tried. ErrUnderTarget is returned when fewer than half the target
// could be cleared; the board keeps whatever carving was achieved.
func (g *Unique) Carve(ctx context.Context, rng *rand.Rand, b *domain.Board, d domain.Difficulty) (int, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	n := b.Size()
	positions := make([]int, n*n)
	for i := range positions {
		positions[i] = i
	}
	rng.Shuffle(len(positions), func(i, j int) { positions[i], positions[j] = positions[j], positions[i] })

	target := d.RemovalTarget()
	removed := 0
	for _, pos := range positions {
		if removed >= target {
			break
		}
		if ctx.Err() != nil {
			break
		}
		r, c := pos/n, pos%n
		old := b.Value(r, c)
		if old == 0 {
			continue
		}
		b.SetValue(r, c, 0)
		b.Fixed[r][c] = false
		count, cst := g.Counter.CountSolutions(ctx, b, 2)
		nodes += cst.Nodes
		if count == 1 {
			removed++
		} else {
			b.SetValue(r, c, old)
			b.Fixed[r][c] = true
		}
	}
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if removed < target/2 {
		return removed, st, fmt.Errorf("carve: removed %d of %d: %w", removed, target, ErrUnderTarget)
	}
	return removed, st, nil
}

// Generate builds a fresh puzzle: seeded random complete grid, solution
// retained, then uniqueness-preserving carving. The same seed reproduces the
// same puzzle.
func (g *Unique) Generate(ctx context.Context, seed int64, box int, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	full, err := g.CompleteGrid(ctx, rng, box)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	solution := full.Clone()

	n := full.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			full.Fixed[r][c] = true
		}
	}

	removed, cst, err := g.Carve(ctx, rng, full, d)
	if err != nil {
		return nil, ports.Stats{Nodes: cst.Nodes, Duration: time.Since(start)}, err
	}

	p := &domain.Puzzle{
		ID:         uuid.NewString(),
		Seed:       seed,
		Difficulty: d,
		Board:      full,
		Solution:   solution,
		Removed:    removed,
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: cst.Nodes, Duration: time.Since(start)}, nil
}
