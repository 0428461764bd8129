package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/habibrosyad/pocketbase-go-sdk"

	"svw.info/sudokulab/internal/domain"
)

// PocketBase stores puzzles in a remote PocketBase collection. Each record
// keeps the full puzzle as a JSON payload plus flat columns for filtering.
type PocketBase struct {
	client     *pocketbase.Client
	collection string
}

// NewPocketBase connects with superuser credentials and verifies them once.
func NewPocketBase(url, email, password string) (*PocketBase, error) {
	client := pocketbase.NewClient(url,
		pocketbase.WithSuperuserEmailPassword(email, password))
	if err := client.Authorize(); err != nil {
		return nil, fmt.Errorf("pocketbase: authorization failed: %w", err)
	}
	return &PocketBase{client: client, collection: "puzzles"}, nil
}

func (s *PocketBase) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("pocketbase: invalid puzzle: missing ID")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("pocketbase: marshal puzzle: %w", err)
	}
	size := 0
	if p.Board != nil {
		size = p.Board.Size()
	}
	data := map[string]any{
		"puzzle_id":  p.ID,
		"puzzle":     string(payload),
		"difficulty": p.Difficulty.String(),
		"size":       strconv.Itoa(size),
		"name":       p.Name,
	}
	if _, err := s.client.Create(s.collection, data); err != nil {
		return fmt.Errorf("pocketbase: create record: %w", err)
	}
	return nil
}

func (s *PocketBase) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	record, err := s.findByPuzzleID(id)
	if err != nil {
		return nil, err
	}
	raw, ok := record["puzzle"].(string)
	if !ok {
		return nil, fmt.Errorf("pocketbase: record %s has no puzzle payload", id)
	}
	var p domain.Puzzle
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("pocketbase: unmarshal puzzle %s: %w", id, err)
	}
	return &p, nil
}

func (s *PocketBase) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	result, err := s.client.List(s.collection, pocketbase.ParamsList{
		Page: 1,
		Size: 200,
		Sort: "-created",
	})
	if err != nil {
		return nil, fmt.Errorf("pocketbase: list records: %w", err)
	}
	out := make([]domain.PuzzleMeta, 0, len(result.Items))
	for _, item := range result.Items {
		raw, ok := item["puzzle"].(string)
		if !ok {
			continue
		}
		var p domain.Puzzle
		if err := json.Unmarshal([]byte(raw), &p); err != nil || p.ID == "" {
			continue
		}
		size := 0
		if p.Board != nil {
			size = p.Board.Size()
		}
		out = append(out, domain.PuzzleMeta{
			ID:         p.ID,
			Name:       p.Name,
			Difficulty: p.Difficulty,
			Size:       size,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out, nil
}

func (s *PocketBase) findByPuzzleID(id string) (map[string]any, error) {
	result, err := s.client.List(s.collection, pocketbase.ParamsList{
		Page:    1,
		Size:    1,
		Filters: fmt.Sprintf("puzzle_id = %q", strings.TrimSpace(id)),
	})
	if err != nil {
		return nil, fmt.Errorf("pocketbase: find %s: %w", id, err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("pocketbase: puzzle %s: %w", id, os.ErrNotExist)
	}
	return result.Items[0], nil
}
