package main

import (
	"fmt"
	"os"
	"time"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/spf13/cobra"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/generator"
	"svw.info/sudokulab/internal/infrastructure/storage"
	"svw.info/sudokulab/internal/render"
	"svw.info/sudokulab/internal/solver"
)

// supported sub-block sizes; box 5 (25x25) already strains uniqueness
// counting, anything larger is unusable interactively
var supportedBoxes = []int{2, 3, 4, 5}

func newGenerateCommand() *cobra.Command {
	var (
		box        int
		difficulty string
		seed       int64
		save       bool
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a uniquely-solvable puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slice.Contain(supportedBoxes, box) {
				return fmt.Errorf("unsupported box size %d (supported: %v)", box, supportedBoxes)
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			g := generator.NewUnique(solver.NewBacktracking())
			p, st, err := g.Generate(cmd.Context(), seed, box, domain.ParseDifficulty(difficulty))
			if err != nil {
				return err
			}

			render.Board(os.Stdout, p.Board)
			fmt.Printf("id=%s seed=%d difficulty=%s removed=%d givens=%d nodes=%d dur=%v\n",
				p.ID, p.Seed, p.Difficulty, p.Removed, p.Board.CountGivens(), st.Nodes, st.Duration.Round(time.Millisecond))

			if save {
				if err := storage.NewFS(dataDir).Save(cmd.Context(), p); err != nil {
					return fmt.Errorf("save puzzle: %w", err)
				}
				fmt.Printf("saved to %s\n", dataDir)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&box, "box", 3, "sub-block side length (3 = classic 9x9)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "medium", "easy|medium|hard|expert")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().BoolVar(&save, "save", false, "save the puzzle to the data directory")
	cmd.Flags().StringVar(&dataDir, "data", "./data", "save directory")
	return cmd
}
