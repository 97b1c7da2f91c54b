package ai

import (
	"log"
	"time"

	"github.com/jaminalder/codex-bridgit/internal/domain"
)

// Stats describes one FindBestMove call.
type Stats struct {
	Start     time.Time
	Elapsed   time.Duration
	RootMoves int
	Nodes     int
	Leaves    int
	Cutoffs   int
	BestScore float64
}

func (s Stats) log(l *log.Logger, side domain.Player, d Difficulty) {
	l.Printf("[ai] %s/%s root=%d nodes=%d leaves=%d cutoffs=%d best=%.1f elapsed=%s",
		side, d, s.RootMoves, s.Nodes, s.Leaves, s.Cutoffs, s.BestScore, s.Elapsed)
}
