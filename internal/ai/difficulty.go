package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects how the AI picks its move.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty accepts "easy", "medium" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(d))
	}
}

// Depth is the minimax horizon in plies. Zero means a random move.
func (d Difficulty) Depth() int {
	switch d {
	case Medium:
		return 2
	case Hard:
		return 3
	default:
		return 0
	}
}

// Random reports whether the difficulty skips search entirely.
func (d Difficulty) Random() bool { return d.Depth() == 0 }
