package usecase

import (
	"context"
	"errors"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/ports"
)

// Service is the facade the adapters consume; every capability is a port so
// callers never reach into the solver packages directly.
type Service struct {
	Solver    ports.Solver
	Counter   ports.Counter
	Step      ports.StepSolver
	Logic     ports.LogicSolver
	Generator ports.Generator
	Validator ports.Validator
	Storage   ports.Storage
}

func New(s ports.Solver, cnt ports.Counter, step ports.StepSolver, logic ports.LogicSolver, g ports.Generator, v ports.Validator, st ports.Storage) *Service {
	return &Service{Solver: s, Counter: cnt, Step: step, Logic: logic, Generator: g, Validator: v, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, b)
}

// SolveLogic runs the deduction solver on a copy and reports whether logic
// alone finished the board, together with the applied moves.
func (u *Service) SolveLogic(ctx context.Context, b *domain.Board) (*domain.Board, bool, []domain.SolverMove, ports.Stats, error) {
	if u.Logic == nil {
		return nil, false, nil, ports.Stats{}, errNotConfigured
	}
	work := b.Clone()
	solved, applied, st := u.Logic.SolveLogic(ctx, work)
	return work, solved, applied, st, nil
}

// CountSolutions exposes the bounded solution counter.
func (u *Service) CountSolutions(ctx context.Context, b *domain.Board, limit int) (int, ports.Stats, error) {
	if u.Counter == nil {
		return 0, ports.Stats{}, errNotConfigured
	}
	count, st := u.Counter.CountSolutions(ctx, b, limit)
	return count, st, nil
}

// Hint prefers a deduced move and falls back to the search solver's next
// trial placement when logic is stuck.
func (u *Service) Hint(ctx context.Context, b *domain.Board) (domain.SolverMove, bool, error) {
	if u.Logic == nil || u.Step == nil {
		return domain.SolverMove{}, false, errNotConfigured
	}
	if moves := u.Logic.AllMoves(b); len(moves) > 0 {
		return moves[0], true, nil
	}
	mv, ok := u.Step.NextMove(b)
	return mv, ok, nil
}

// Moves enumerates candidate moves from the chosen solver, sorted by
// descending confidence.
func (u *Service) Moves(ctx context.Context, b *domain.Board, logic bool) ([]domain.SolverMove, error) {
	if logic {
		if u.Logic == nil {
			return nil, errNotConfigured
		}
		return u.Logic.AllMoves(b), nil
	}
	if u.Step == nil {
		return nil, errNotConfigured
	}
	return u.Step.AllMoves(b), nil
}

func (u *Service) Generate(ctx context.Context, seed int64, box int, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, box, d)
}

func (u *Service) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, b)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
