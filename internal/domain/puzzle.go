package domain

// Puzzle is a persisted Sudoku with metadata. Solution keeps the complete
// grid the puzzle was carved from.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Board      *Board     `json:"board"`
	Solution   *Board     `json:"solution,omitempty"`
	Removed    int        `json:"removed,omitempty"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Size       int        `json:"size,omitempty"`
	CreatedAt  int64      `json:"createdAt"`
}
