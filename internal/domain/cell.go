package domain

// Cell is a single square on the board. Value 0 means empty.
//
// Candidates are advisory pencil marks. Deduction code recomputes them from
// the current board state whenever it needs them; nothing keeps them in sync
// with placements, so they must never be treated as authoritative.
type Cell struct {
	Value      uint8   `json:"value"`
	Candidates []uint8 `json:"candidates,omitempty"`
}

func (c *Cell) HasCandidate(v uint8) bool {
	for _, cand := range c.Candidates {
		if cand == v {
			return true
		}
	}
	return false
}

func (c *Cell) AddCandidate(v uint8) {
	if c.HasCandidate(v) {
		return
	}
	c.Candidates = append(c.Candidates, v)
}

func (c *Cell) RemoveCandidate(v uint8) {
	for i, cand := range c.Candidates {
		if cand == v {
			c.Candidates = append(c.Candidates[:i], c.Candidates[i+1:]...)
			return
		}
	}
}
