package domain

import "strings"

// Difficulty selects how many cells the generator tries to clear.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// RemovalTarget is the number of cells the generator attempts to clear.
// The targets are calibrated for the classic 9x9 board and are applied
// as-is to other sizes; small boards simply run out of removable cells
// sooner.
func (d Difficulty) RemovalTarget() int {
	switch d {
	case Easy:
		return 30
	case Medium:
		return 40
	case Hard:
		return 50
	default:
		return 55 // Expert
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

// ParseDifficulty maps a label to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	case "expert":
		return Expert
	default:
		return Medium
	}
}
