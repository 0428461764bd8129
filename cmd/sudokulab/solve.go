package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/propagate"
	"svw.info/sudokulab/internal/render"
	"svw.info/sudokulab/internal/solver"
)

func newSolveCommand() *cobra.Command {
	var (
		grid       string
		file       string
		box        int
		solverKind string
		logic      bool
		hint       bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a puzzle from a grid string or a saved JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(grid, file, box)
			if err != nil {
				return err
			}

			if hint {
				p := propagate.New()
				if mv, ok := p.NextMove(b); ok {
					fmt.Println(render.Move(mv))
					return nil
				}
				bt := solver.NewBacktracking()
				if mv, ok := bt.NextMove(b); ok {
					fmt.Println(render.Move(mv))
					return nil
				}
				fmt.Println("no move available")
				return nil
			}

			if logic {
				p := propagate.New()
				work := b.Clone()
				solved, applied, st := p.SolveLogic(cmd.Context(), work)
				for _, mv := range applied {
					fmt.Println(render.Move(mv))
				}
				render.Board(os.Stdout, work)
				if !solved {
					fmt.Printf("no further deduction possible after %d moves (%v)\n",
						len(applied), st.Duration.Round(time.Millisecond))
					return nil
				}
				fmt.Printf("solved by logic in %d moves (%v)\n", len(applied), st.Duration.Round(time.Millisecond))
				return nil
			}

			var s ports.Solver
			switch strings.ToLower(strings.TrimSpace(solverKind)) {
			case "backtrack", "backtracking":
				s = solver.NewBacktracking()
			default:
				s = solver.NewDLX()
			}
			out, st, err := s.Solve(cmd.Context(), b)
			if err != nil {
				return err
			}
			render.Board(os.Stdout, out)
			fmt.Printf("nodes=%d dur=%v\n", st.Nodes, st.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&grid, "grid", "", "row-major cell digits, '.' or '0' for empty")
	cmd.Flags().StringVar(&file, "file", "", "saved puzzle JSON file")
	cmd.Flags().IntVar(&box, "box", 3, "sub-block side length for --grid input")
	cmd.Flags().StringVar(&solverKind, "solver", "dlx", "solver to use: dlx|backtrack")
	cmd.Flags().BoolVar(&logic, "logic", false, "use deduction strategies only, no search")
	cmd.Flags().BoolVar(&hint, "hint", false, "print the next suggested move and exit")
	return cmd
}

func loadBoard(grid, file string, box int) (*domain.Board, error) {
	switch {
	case grid != "":
		return domain.ParseGrid(box, grid)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err == nil && p.Board != nil {
			return p.Board, nil
		}
		var b domain.Board
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("either --grid or --file is required")
	}
}
