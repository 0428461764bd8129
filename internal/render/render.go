// Package render draws boards as box-ruled text for the CLI.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/duke-git/lancet/v2/strutil"

	"svw.info/sudokulab/internal/domain"
)

// Board writes a box-ruled rendering of b to w. Empty cells print as dots;
// multi-digit values (16x16 and up) stay column-aligned.
func Board(w io.Writer, b *domain.Board) {
	n := b.Size()
	width := len(fmt.Sprint(n))

	horizontalRule(w, b.Box, n, width)
	for r := 0; r < n; r++ {
		fmt.Fprint(w, "│ ")
		for c := 0; c < n; c++ {
			cell := "."
			if v := b.Value(r, c); v != 0 {
				cell = fmt.Sprint(v)
			}
			fmt.Fprint(w, strutil.PadStart(cell, width, " "), " ")
			if (c+1)%b.Box == 0 && c < n-1 {
				fmt.Fprint(w, "│ ")
			}
		}
		fmt.Fprintln(w, "│")
		if (r+1)%b.Box == 0 && r < n-1 {
			horizontalRule(w, b.Box, n, width)
		}
	}
	horizontalRule(w, b.Box, n, width)
}

func horizontalRule(w io.Writer, box, n, width int) {
	fmt.Fprint(w, "├")
	for i := 0; i < n; i++ {
		fmt.Fprint(w, strings.Repeat("─", width+1))
		if (i+1)%box == 0 && i < n-1 {
			fmt.Fprint(w, "┼")
		}
	}
	fmt.Fprintln(w, "┤")
}

// Move formats a solver move for terminal output.
func Move(mv domain.SolverMove) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,%d) = %d", mv.Row+1, mv.Col+1, mv.Value)
	if mv.Strategy != "" {
		fmt.Fprintf(&sb, " [%s, confidence %.2f]", mv.Strategy, mv.Confidence)
	} else {
		fmt.Fprintf(&sb, " [confidence %.2f]", mv.Confidence)
	}
	if mv.Rationale != "" {
		fmt.Fprintf(&sb, ": %s", mv.Rationale)
	}
	return sb.String()
}
