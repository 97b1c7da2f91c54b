package ai

import (
	"log"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/jaminalder/codex-bridgit/internal/domain"
)

const winScore = 10000

// Player is a computer opponent for one side.
type Player struct {
	side       domain.Player
	difficulty Difficulty
	rng        *rand.Rand
	logger     *log.Logger
	logStats   bool
	thinking   atomic.Bool
	last       Stats
}

// Option configures a Player.
type Option func(*Player)

// WithRand sets the random source used for easy moves and move shuffling.
// r is used without locking, so it must not be shared with another Player
// that searches concurrently.
func WithRand(r *rand.Rand) Option {
	return func(p *Player) { p.rng = r }
}

// WithLogger sets the logger for search statistics.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithStats turns on per-search statistics logging.
func WithStats(enabled bool) Option {
	return func(p *Player) { p.logStats = enabled }
}

// New returns an AI playing side at the given difficulty.
func New(side domain.Player, d Difficulty, opts ...Option) *Player {
	p := &Player{side: side, difficulty: d}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p
}

// Side is the colour the AI plays.
func (p *Player) Side() domain.Player { return p.side }

// Difficulty is the level the AI plays at.
func (p *Player) Difficulty() Difficulty { return p.difficulty }

// Thinking reports whether FindBestMove is running.
func (p *Player) Thinking() bool { return p.thinking.Load() }

// LastStats returns the statistics of the latest FindBestMove call.
func (p *Player) LastStats() Stats { return p.last }

// FindBestMove picks a move for the AI's side. It reports false when the
// game is over, it is not the AI's turn, or no legal move exists.
// g is mutated during search and restored before returning.
func (p *Player) FindBestMove(g *domain.Game) (domain.Move, bool) {
	p.thinking.Store(true)
	defer p.thinking.Store(false)

	stats := Stats{Start: time.Now()}
	defer func() {
		stats.Elapsed = time.Since(stats.Start)
		p.last = stats
		if p.logStats {
			stats.log(p.logger, p.side, p.difficulty)
		}
	}()

	if g.Over() || g.CurrentPlayer() != p.side {
		return domain.Move{}, false
	}
	moves := LegalMoves(g, p.side)
	stats.RootMoves = len(moves)
	if len(moves) == 0 {
		return domain.Move{}, false
	}

	if p.difficulty.Random() {
		return moves[p.rng.Intn(len(moves))], true
	}

	p.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

	depth := p.difficulty.Depth()
	best := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		score := p.searchMove(g, m, depth-1, math.Inf(-1), math.Inf(1), false, &stats)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	stats.BestScore = bestScore
	return best, true
}

// searchMove applies m, scores the resulting position and undoes m, also
// when the search below panics.
func (p *Player) searchMove(g *domain.Game, m domain.Move, depth int, alpha, beta float64, maximizing bool, stats *Stats) float64 {
	g.Push(m)
	defer g.Pop()
	return p.minimax(g, depth, alpha, beta, maximizing, stats)
}

func (p *Player) minimax(g *domain.Game, depth int, alpha, beta float64, maximizing bool, stats *Stats) float64 {
	stats.Nodes++

	// terminal results outrank the horizon; depth rewards faster wins
	if g.CheckWin(p.side) {
		return winScore + float64(depth)
	}
	opponent := p.side.Opponent()
	if g.CheckWin(opponent) {
		return -winScore - float64(depth)
	}

	if depth == 0 {
		stats.Leaves++
		return Evaluate(g, p.side)
	}

	mover := opponent
	if maximizing {
		mover = p.side
	}
	moves := LegalMoves(g, mover)
	if len(moves) == 0 {
		return 0
	}

	if maximizing {
		maxEval := math.Inf(-1)
		for _, m := range moves {
			eval := p.searchMove(g, m, depth-1, alpha, beta, false, stats)
			maxEval = math.Max(maxEval, eval)
			alpha = math.Max(alpha, eval)
			if beta <= alpha {
				stats.Cutoffs++
				break
			}
		}
		return maxEval
	}

	minEval := math.Inf(1)
	for _, m := range moves {
		eval := p.searchMove(g, m, depth-1, alpha, beta, true, stats)
		minEval = math.Min(minEval, eval)
		beta = math.Min(beta, eval)
		if beta <= alpha {
			stats.Cutoffs++
			break
		}
	}
	return minEval
}

// LegalMoves lists every link side could draw now: adjacent pairs not yet
// linked by side and not crossing any link on the board.
func LegalMoves(g *domain.Game, side domain.Player) []domain.Move {
	dots := g.Dots(side)
	links := g.Links(side)
	cols := side.Cols()
	var moves []domain.Move
	consider := func(d1, d2 *domain.Dot) {
		if !domain.LinkExists(d1, d2, links) && !domain.WouldCross(d1, d2, g) {
			moves = append(moves, domain.Move{From: d1, To: d2})
		}
	}
	for i, d := range dots {
		if d.Col+1 < cols {
			consider(d, dots[i+1])
		}
		if d.Row+1 < side.Rows() {
			consider(d, dots[i+cols])
		}
	}
	return moves
}
