package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/generator"
	"svw.info/sudokulab/internal/propagate"
	"svw.info/sudokulab/internal/solver"
	"svw.info/sudokulab/internal/usecase"
	"svw.info/sudokulab/internal/validator"
)

// memStorage is an in-memory ports.Storage double.
type memStorage struct {
	mu      sync.Mutex
	puzzles map[string]*domain.Puzzle
}

func newMemStorage() *memStorage {
	return &memStorage{puzzles: map[string]*domain.Puzzle{}}
}

func (m *memStorage) Save(ctx context.Context, p *domain.Puzzle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puzzles[p.ID] = p
	return nil
}

func (m *memStorage) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.puzzles[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	return p, nil
}

func (m *memStorage) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PuzzleMeta, 0, len(m.puzzles))
	for _, p := range m.puzzles {
		size := 0
		if p.Board != nil {
			size = p.Board.Size()
		}
		out = append(out, domain.PuzzleMeta{ID: p.ID, Name: p.Name, Difficulty: p.Difficulty, Size: size, CreatedAt: p.CreatedAt})
	}
	return out, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	bt := solver.NewBacktracking()
	uc := usecase.New(bt, bt, bt, propagate.New(), generator.NewUnique(bt), validator.New(), newMemStorage())
	mux := http.NewServeMux()
	New(uc).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

var classic = [][]uint8{
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

func TestSolveEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/solve", boardReq{Box: 3, Values: classic})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	out := decode[solveResp](t, resp)
	if out.Box != 3 {
		t.Fatalf("box: got %d, want 3", out.Box)
	}
	want := []uint8{5, 3, 4, 6, 7, 8, 9, 1, 2}
	for c, v := range want {
		if out.Values[0][c] != v {
			t.Fatalf("row 0: got %v, want %v", out.Values[0], want)
		}
	}
}

func TestSolveEndpointUnsolvable(t *testing.T) {
	srv := newTestServer(t)

	bad := make([][]uint8, 9)
	for r := range bad {
		bad[r] = make([]uint8, 9)
	}
	bad[0][0], bad[0][1] = 5, 5

	resp := postJSON(t, srv.URL+"/api/solve", boardReq{Box: 3, Values: bad})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", resp.StatusCode)
	}
}

func TestSolveEndpointRejectsGet(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/solve")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", resp.StatusCode)
	}
}

func TestSolveEndpointBadBoard(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/api/solve", boardReq{Box: 3, Values: [][]uint8{{1}}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestCountEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/count", countReq{Box: 3, Values: classic, Limit: 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	out := decode[countResp](t, resp)
	if out.Count != 1 {
		t.Fatalf("count: got %d, want 1", out.Count)
	}
	if out.Limit != 2 {
		t.Fatalf("limit echoed as %d, want 2", out.Limit)
	}
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/validate", boardReq{Box: 3, Values: classic})
	out := decode[validateResp](t, resp)
	if !out.OK || len(out.Conflicts) != 0 {
		t.Fatalf("valid board flagged: %+v", out)
	}

	bad := make([][]uint8, 9)
	for r := range bad {
		bad[r] = make([]uint8, 9)
	}
	bad[0][0], bad[0][5] = 7, 7
	resp = postJSON(t, srv.URL+"/api/validate", boardReq{Box: 3, Values: bad})
	out = decode[validateResp](t, resp)
	if out.OK || len(out.Conflicts) == 0 {
		t.Fatalf("conflicting board passed: %+v", out)
	}
}

func TestHintEndpoint(t *testing.T) {
	srv := newTestServer(t)

	values := make([][]uint8, 9)
	for r := range values {
		values[r] = make([]uint8, 9)
	}
	copy(values[0], []uint8{5, 3, 0, 6, 7, 8, 9, 1, 2})

	resp := postJSON(t, srv.URL+"/api/hint", boardReq{Box: 3, Values: values})
	out := decode[hintResp](t, resp)
	if !out.HasMove {
		t.Fatal("want a hint")
	}
	if out.Move.Row != 0 || out.Move.Col != 2 || out.Move.Value != 4 {
		t.Fatalf("hint: got (%d,%d)=%d, want (0,2)=4", out.Move.Row, out.Move.Col, out.Move.Value)
	}
	if out.Move.Strategy != "naked single" {
		t.Fatalf("strategy: got %q", out.Move.Strategy)
	}
}

func TestMovesEndpointSolverChoice(t *testing.T) {
	srv := newTestServer(t)

	req := boardReq{Box: 3, Values: classic}
	logic := decode[movesResp](t, postJSON(t, srv.URL+"/api/moves", req))
	if len(logic.Moves) == 0 {
		t.Fatal("logic moves empty")
	}
	for i := 1; i < len(logic.Moves); i++ {
		if logic.Moves[i-1].Confidence < logic.Moves[i].Confidence {
			t.Fatal("logic moves not sorted by descending confidence")
		}
	}

	bt := decode[movesResp](t, postJSON(t, srv.URL+"/api/moves?solver=backtrack", req))
	if len(bt.Moves) == 0 {
		t.Fatal("backtrack moves empty")
	}
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/generate", generateReq{Box: 3, Difficulty: "easy", Seed: 21})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	out := decode[generateResp](t, resp)
	if out.ID == "" || out.Box != 3 || out.Difficulty != "easy" {
		t.Fatalf("metadata: %+v", out)
	}
	if out.Removed < domain.Easy.RemovalTarget()/2 {
		t.Fatalf("removed %d, want at least half the target", out.Removed)
	}
}

func TestSaveLoadListEndpoints(t *testing.T) {
	srv := newTestServer(t)

	b, err := domain.FromValues(3, classic)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	p := domain.Puzzle{ID: "round-trip", Difficulty: domain.Medium, Board: b, Name: "classic"}

	resp := postJSON(t, srv.URL+"/api/save", p)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status: got %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	got, err := http.Get(srv.URL + "/api/load?id=round-trip")
	if err != nil {
		t.Fatalf("GET load: %v", err)
	}
	loaded := decode[domain.Puzzle](t, got)
	if loaded.ID != "round-trip" || loaded.Board == nil || loaded.Board.Value(0, 0) != 5 {
		t.Fatalf("loaded puzzle wrong: %+v", loaded)
	}

	missing, err := http.Get(srv.URL + "/api/load?id=absent")
	if err != nil {
		t.Fatalf("GET load: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing id status: got %d, want 404", missing.StatusCode)
	}

	list, err := http.Get(srv.URL + "/api/list")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	metas := decode[[]domain.PuzzleMeta](t, resp2xx(t, list))
	if len(metas) != 1 || metas[0].ID != "round-trip" {
		t.Fatalf("list: %+v", metas)
	}
}

func resp2xx(t *testing.T, resp *http.Response) *http.Response {
	t.Helper()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	return resp
}
