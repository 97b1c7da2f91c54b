package app

import (
	"fmt"
	"strings"

	"github.com/jaminalder/codex-bridgit/internal/ai"
)

// Mode selects who plays red.
type Mode string

const (
	ModePvP      Mode = "pvp"
	ModeAIEasy   Mode = "ai-easy"
	ModeAIMedium Mode = "ai-medium"
	ModeAIHard   Mode = "ai-hard"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModePvP, ModeAIEasy, ModeAIMedium, ModeAIHard}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Difficulty returns the AI level for AI modes.
func (m Mode) Difficulty() (ai.Difficulty, bool) {
	if !strings.HasPrefix(string(m), "ai-") {
		return 0, false
	}
	d, err := ai.ParseDifficulty(strings.TrimPrefix(string(m), "ai-"))
	return d, err == nil
}

// Label is the menu text for m.
func (m Mode) Label() string {
	switch m {
	case ModePvP:
		return "Player vs Player"
	case ModeAIEasy:
		return "vs AI (Easy)"
	case ModeAIMedium:
		return "vs AI (Medium)"
	case ModeAIHard:
		return "vs AI (Hard)"
	default:
		return string(m)
	}
}
