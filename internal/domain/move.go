package domain

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SolverMove is one proposed placement. It is a value object produced by the
// solvers, never part of persistent board state.
//
// Confidence is a plausibility score in [0,1]. For deduction strategies it
// encodes logical certainty (a forced move is 1.0), not a statistical
// probability.
type SolverMove struct {
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Value      uint8   `json:"value"`
	Rationale  string  `json:"rationale,omitempty"`
	Strategy   string  `json:"strategy,omitempty"`
	Confidence float64 `json:"confidence"`
}
