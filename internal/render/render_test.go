package render

import (
	"strings"
	"testing"

	"svw.info/sudokulab/internal/domain"
)

func TestBoardRendering(t *testing.T) {
	b, err := domain.FromValues(2, [][]uint8{
		{1, 2, 0, 0},
		{0, 0, 1, 2},
		{2, 0, 0, 1},
		{0, 1, 2, 0},
	})
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}

	var sb strings.Builder
	Board(&sb, b)
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 4 cell rows plus 3 rules (top, middle, bottom)
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "1 2") {
		t.Fatalf("row 0 values missing: %q", lines[1])
	}
	if !strings.Contains(out, ".") {
		t.Fatal("empty cells must render as dots")
	}
	// every cell row gets the box separator between columns 2 and 3
	if strings.Count(lines[1], "│") != 3 {
		t.Fatalf("row separator count: %q", lines[1])
	}
}

func TestBoardRenderingAligns16x16(t *testing.T) {
	b := domain.NewBoard(4)
	b.SetValue(0, 0, 16)
	b.SetValue(0, 1, 1)

	var sb strings.Builder
	Board(&sb, b)
	lines := strings.Split(sb.String(), "\n")
	if !strings.Contains(lines[1], "16  1") {
		t.Fatalf("two-digit alignment broken: %q", lines[1])
	}
}

func TestMoveFormatting(t *testing.T) {
	mv := domain.SolverMove{Row: 0, Col: 2, Value: 4, Strategy: "naked single", Confidence: 1, Rationale: "only possible value"}
	got := Move(mv)
	want := "(1,3) = 4 [naked single, confidence 1.00]: only possible value"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	bare := Move(domain.SolverMove{Row: 4, Col: 4, Value: 5, Confidence: 0.9})
	if bare != "(5,5) = 5 [confidence 0.90]" {
		t.Fatalf("got %q", bare)
	}
}
