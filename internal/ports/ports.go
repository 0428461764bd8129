package ports

import (
	"context"
	"math/rand"
	"time"

	"svw.info/sudokulab/internal/domain"
)

// Stats captures performance characteristics of an operation. It is
// telemetry only and never feeds back into control flow.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver completes a board by search.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (*domain.Board, Stats, error)
}

// Counter counts completions of a board up to limit, aborting early once the
// limit is reached. The generator passes 2 to decide uniqueness.
type Counter interface {
	CountSolutions(ctx context.Context, b *domain.Board, limit int) (int, Stats)
}

// StepSolver exposes single-move semantics for interactive use.
type StepSolver interface {
	NextMove(b *domain.Board) (domain.SolverMove, bool)
	AllMoves(b *domain.Board) []domain.SolverMove
}

// LogicSolver applies deduction strategies without guessing. Solved=false
// with a nil error means no strategy made progress; the board may still be
// solvable by search.
type LogicSolver interface {
	SolveLogic(ctx context.Context, b *domain.Board) (solved bool, applied []domain.SolverMove, st Stats)
	AllMoves(b *domain.Board) []domain.SolverMove
}

// Generator builds complete grids and carves uniquely-solvable puzzles.
type Generator interface {
	Generate(ctx context.Context, seed int64, box int, d domain.Difficulty) (*domain.Puzzle, Stats, error)
	CompleteGrid(ctx context.Context, rng *rand.Rand, box int) (*domain.Board, error)
	Carve(ctx context.Context, rng *rand.Rand, b *domain.Board, d domain.Difficulty) (removed int, st Stats, err error)
}

// Validator performs fast constraint checks (row/col/box).
type Validator interface {
	Validate(ctx context.Context, b *domain.Board) (ok bool, conflicts []domain.CellCoord, err error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
