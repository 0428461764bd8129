package httpadapter

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"svw.info/sudokulab/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamFrame is one message on the solve stream: a move, or the final
// summary when Done is set.
type streamFrame struct {
	Move     *domain.SolverMove `json:"move,omitempty"`
	Applied  int                `json:"applied,omitempty"`
	Done     bool               `json:"done,omitempty"`
	Solved   bool               `json:"solved,omitempty"`
	Fallback bool               `json:"fallback,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// handleSolveStream upgrades to a websocket, reads one board, and pushes
// moves one at a time: deduced moves while logic makes progress, then the
// search solver's next trial placement as a fallback. The stream ends with a
// done frame.
func (h *Handler) handleSolveStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var req boardReq
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(streamFrame{Done: true, Error: "invalid board: " + err.Error()})
		return
	}
	b, err := req.toBoard()
	if err != nil {
		_ = conn.WriteJSON(streamFrame{Done: true, Error: err.Error()})
		return
	}

	applied := 0
	for !b.IsComplete() {
		if r.Context().Err() != nil {
			return
		}
		mv, ok, err := h.UC.Hint(r.Context(), b)
		if err != nil || !ok {
			break
		}
		b.SetValue(mv.Row, mv.Col, mv.Value)
		applied++
		frame := streamFrame{Move: &mv, Applied: applied, Fallback: mv.Strategy == "backtracking"}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
	_ = conn.WriteJSON(streamFrame{Done: true, Solved: b.IsComplete(), Applied: applied})
}
