package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"svw.info/sudokulab/internal/domain"
	"svw.info/sudokulab/internal/solver"
	"svw.info/sudokulab/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/solve/logic", h.handleSolveLogic)
	mux.HandleFunc("/api/solve/stream", h.handleSolveStream)
	mux.HandleFunc("/api/count", h.handleCount)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/moves", h.handleMoves)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// boardReq is the wire shape every board-consuming endpoint accepts.
type boardReq struct {
	Box    int       `json:"box,omitempty"`
	Values [][]uint8 `json:"values"`
}

func (r boardReq) toBoard() (*domain.Board, error) {
	box := r.Box
	if box == 0 {
		box = 3
	}
	return domain.FromValues(box, r.Values)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Error: "method not allowed"})
		return false
	}
	return true
}

func decodeBoard(w http.ResponseWriter, r *http.Request) (*domain.Board, bool) {
	var req boardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "invalid JSON: " + err.Error()})
		return nil, false
	}
	b, err := req.toBoard()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: err.Error()})
		return nil, false
	}
	return b, true
}

// ---- Generate ----

type generateReq struct {
	Box        int    `json:"box,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

type generateResp struct {
	ID         string    `json:"id,omitempty"`
	Box        int       `json:"box"`
	Values     [][]uint8 `json:"values"`
	Seed       int64     `json:"seed,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Removed    int       `json:"removed,omitempty"`
	DurationMs int64     `json:"durationMs,omitempty"`
	Nodes      int       `json:"nodes,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Box == 0 {
		req.Box = 3
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, st, err := h.UC.Generate(r.Context(), seed, req.Box, domain.ParseDifficulty(req.Difficulty))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		ID:         p.ID,
		Box:        p.Board.Box,
		Values:     p.Board.Values(),
		Seed:       seed,
		Difficulty: p.Difficulty.String(),
		Removed:    p.Removed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve ----

type solveResp struct {
	Box        int       `json:"box"`
	Values     [][]uint8 `json:"values"`
	DurationMs int64     `json:"durationMs,omitempty"`
	Nodes      int       `json:"nodes,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	b, ok := decodeBoard(w, r)
	if !ok {
		return
	}
	out, st, err := h.UC.Solve(r.Context(), b)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, solver.ErrNoSolution) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveResp{
		Box:        out.Box,
		Values:     out.Values(),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Solve by logic only ----

type solveLogicResp struct {
	Box        int                 `json:"box"`
	Values     [][]uint8           `json:"values"`
	Solved     bool                `json:"solved"`
	Applied    []domain.SolverMove `json:"applied,omitempty"`
	DurationMs int64               `json:"durationMs,omitempty"`
}

func (h *Handler) handleSolveLogic(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	b, ok := decodeBoard(w, r)
	if !ok {
		return
	}
	out, solved, applied, st, err := h.UC.SolveLogic(r.Context(), b)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solveLogicResp{
		Box:        out.Box,
		Values:     out.Values(),
		Solved:     solved,
		Applied:    applied,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Solution count ----

type countReq struct {
	Box    int       `json:"box,omitempty"`
	Values [][]uint8 `json:"values"`
	Limit  int       `json:"limit,omitempty"`
}

type countResp struct {
	Count      int   `json:"count"`
	Limit      int   `json:"limit"`
	Nodes      int   `json:"nodes,omitempty"`
	DurationMs int64 `json:"durationMs,omitempty"`
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req countReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	b, err := boardReq{Box: req.Box, Values: req.Values}.toBoard()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: err.Error()})
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = 2
	}
	count, st, err := h.UC.CountSolutions(r.Context(), b, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, countResp{
		Count:      count,
		Limit:      limit,
		Nodes:      st.Nodes,
		DurationMs: st.Duration.Milliseconds(),
	})
}

// ---- Validate ----

type validateResp struct {
	OK        bool               `json:"ok"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	b, ok := decodeBoard(w, r)
	if !ok {
		return
	}
	valid, conflicts, err := h.UC.Validate(r.Context(), b)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: valid, Conflicts: conflicts})
}

// ---- Hint ----

type hintResp struct {
	Move    domain.SolverMove `json:"move"`
	HasMove bool              `json:"hasMove"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	b, ok := decodeBoard(w, r)
	if !ok {
		return
	}
	mv, has, err := h.UC.Hint(r.Context(), b)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Move: mv, HasMove: has})
}

// ---- All moves ----

type movesResp struct {
	Moves []domain.SolverMove `json:"moves"`
}

func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	logic := r.URL.Query().Get("solver") != "backtrack"
	b, ok := decodeBoard(w, r)
	if !ok {
		return
	}
	moves, err := h.UC.Moves(r.Context(), b, logic)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, movesResp{Moves: moves})
}

// ---- Persistence ----

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var p domain.Puzzle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": p.ID})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Error: "missing id"})
		return
	}
	p, err := h.UC.Load(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, metas)
}
