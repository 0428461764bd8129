package solver

import (
	"context"
	"errors"
	"testing"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/validator"
)

// A classic, solvable Sudoku (0 = empty).
var sample = [][]uint8{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

func sampleBoard(t *testing.T) *domain.Board {
	t.Helper()
	b, err := domain.FromValues(3, sample)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	return b
}

func TestBacktrackingSolveClassic(t *testing.T) {
	in := sampleBoard(t)
	s := NewBacktracking()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, st, err := s.Solve(ctx, in)
	if err != nil {
		t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
	}
	if !out.IsComplete() {
		t.Fatal("solution has empty cells")
	}
	if !validator.BoardValid(out) {
		t.Fatal("solution is not valid")
	}
	// the classic grid has a unique completion; check its first row
	wantRow := []uint8{5, 3, 4, 6, 7, 8, 9, 1, 2}
	for c, want := range wantRow {
		if got := out.Value(0, c); got != want {
			t.Fatalf("row 1 col %d: got %d, want %d", c+1, got, want)
		}
	}
	// givens must survive unchanged
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if sample[r][c] != 0 && out.Value(r, c) != sample[r][c] {
				t.Fatalf("given at (%d,%d) changed from %d to %d", r, c, sample[r][c], out.Value(r, c))
			}
		}
	}
	t.Logf("solved in %v, nodes=%d", st.Duration, st.Nodes)
}

func TestBacktrackingSolveLeavesInputUntouched(t *testing.T) {
	in := sampleBoard(t)
	before := in.Values()
	s := NewBacktracking()
	if _, _, err := s.Solve(context.Background(), in); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	after := in.Values()
	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("input board mutated at (%d,%d)", r, c)
			}
		}
	}
}

func TestBacktrackingSolveInvalidBoard(t *testing.T) {
	b := domain.NewBoard(3)
	b.SetValue(0, 0, 5)
	b.SetValue(0, 8, 5) // duplicate in row

	s := NewBacktracking()
	_, _, err := s.Solve(context.Background(), b)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("want ErrNoSolution for invalid board, got %v", err)
	}
}

func TestBacktrackingSolveUnsolvable(t *testing.T) {
	// valid board, but (0,2) has been squeezed to no candidate:
	// row holds 1,2 and 5..9, column holds 3, box holds 4
	b := domain.NewBoard(3)
	row := []uint8{1, 2, 0, 5, 6, 7, 8, 9, 0}
	for c, v := range row {
		b.SetValue(0, c, v)
	}
	b.SetValue(5, 2, 3)
	b.SetValue(1, 1, 4)

	s := NewBacktracking()
	_, _, err := s.Solve(context.Background(), b)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("want ErrNoSolution, got %v", err)
	}
}

func TestBacktrackingSolve4x4(t *testing.T) {
	values := [][]uint8{
		{1, 0, 0, 0},
		{0, 0, 3, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 2},
	}
	b, err := domain.FromValues(2, values)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	s := NewBacktracking()
	out, _, err := s.Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !out.IsComplete() || !validator.BoardValid(out) {
		t.Fatal("4x4 solution incomplete or invalid")
	}
}

func TestBacktrackingSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewBacktracking()
	_, _, err := s.Solve(ctx, domain.NewBoard(3))
	if err == nil {
		t.Fatal("want error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
