package solver

import (
	"context"
	"testing"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/validator"
)

func TestNextMoveFirstEmptyCell(t *testing.T) {
	b := sampleBoard(t)
	s := NewBacktracking()

	mv, ok := s.NextMove(b)
	if !ok {
		t.Fatal("want a move on a solvable board")
	}
	// first empty cell in row-major order is (0,2)
	if mv.Row != 0 || mv.Col != 2 {
		t.Fatalf("got cell (%d,%d), want (0,2)", mv.Row, mv.Col)
	}
	if !validator.PlacementValid(b, mv.Row, mv.Col, mv.Value) {
		t.Fatalf("proposed value %d is not locally valid", mv.Value)
	}
	if mv.Confidence != 0.9 {
		t.Fatalf("confidence: got %v, want 0.9", mv.Confidence)
	}
}

func TestNextMoveCompleteBoard(t *testing.T) {
	b := sampleBoard(t)
	s := NewBacktracking()
	solved, _, err := s.Solve(context.Background(), b)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if _, ok := s.NextMove(solved); ok {
		t.Fatal("complete board must yield no move")
	}
}

func TestAllMovesSortedAndValid(t *testing.T) {
	b := sampleBoard(t)
	s := NewBacktracking()

	moves := s.AllMoves(b)
	if len(moves) == 0 {
		t.Fatal("want moves on a board with empty cells")
	}
	for i, mv := range moves {
		if !validator.PlacementValid(b, mv.Row, mv.Col, mv.Value) {
			t.Errorf("move %d: value %d at (%d,%d) not locally valid", i, mv.Value, mv.Row, mv.Col)
		}
		if mv.Confidence < 0 || mv.Confidence > 1 {
			t.Errorf("move %d: confidence %v out of [0,1]", i, mv.Confidence)
		}
		if i > 0 && moves[i-1].Confidence < mv.Confidence {
			t.Fatalf("moves not sorted by descending confidence at %d", i)
		}
	}
}

func TestAllMovesRanksForcedCellFirst(t *testing.T) {
	// row 0 is missing only the 4 at (0,2), so that cell is forced
	values := [][]uint8{
		{5, 3, 0, 6, 7, 8, 9, 1, 2},
		{6, 0, 0, 1, 9, 5, 0, 0, 0},
		{0, 9, 8, 0, 0, 0, 0, 6, 0},
		{8, 0, 0, 0, 6, 0, 0, 0, 3},
		{4, 0, 0, 8, 0, 3, 0, 0, 1},
		{7, 0, 0, 0, 2, 0, 0, 0, 6},
		{0, 6, 0, 0, 0, 0, 2, 8, 0},
		{0, 0, 0, 4, 1, 9, 0, 0, 5},
		{0, 0, 0, 0, 8, 0, 0, 7, 9},
	}
	b, err := domain.FromValues(3, values)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	s := NewBacktracking()
	moves := s.AllMoves(b)
	if len(moves) == 0 {
		t.Fatal("want moves")
	}
	top := moves[0]
	if top.Confidence != 1.0 {
		t.Fatalf("top confidence: got %v, want 1.0", top.Confidence)
	}
	if top.Row != 0 || top.Col != 2 || top.Value != 4 {
		t.Fatalf("top move: got (%d,%d)=%d, want (0,2)=4", top.Row, top.Col, top.Value)
	}
}
