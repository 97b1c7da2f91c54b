package domain

import (
	"errors"
	"fmt"
)

// Game holds the current state of a Bridg-it match.
type Game struct {
	turn      Player
	winner    Player
	selected  *Dot
	blueDots  []*Dot
	redDots   []*Dot
	blueLinks []Link
	redLinks  []Link
}

// Errors returned by domain operations.
var (
	ErrGameOver      = errors.New("game over")
	ErrNotYourDot    = errors.New("dot does not belong to the player to move")
	ErrNotAdjacent   = errors.New("dots are not adjacent")
	ErrAlreadyLinked = errors.New("dots already linked")
	ErrCrossing      = errors.New("link would cross an existing link")
)

// New returns a new game with both grids placed by layout and blue to move.
func New(layout Layout) *Game {
	if layout == nil {
		layout = DefaultLayout
	}
	return &Game{
		turn:     Blue,
		blueDots: newGrid(Blue, layout),
		redDots:  newGrid(Red, layout),
	}
}

func newGrid(p Player, layout Layout) []*Dot {
	dots := make([]*Dot, 0, p.Rows()*p.Cols())
	for row := 0; row < p.Rows(); row++ {
		for col := 0; col < p.Cols(); col++ {
			x, y := layout.Position(p, row, col)
			dots = append(dots, &Dot{X: x, Y: y, Player: p, Row: row, Col: col})
		}
	}
	return dots
}

// CurrentPlayer returns the side to move.
func (g *Game) CurrentPlayer() Player { return g.turn }

// Winner returns the winning side or NoPlayer.
func (g *Game) Winner() Player { return g.winner }

// Over reports whether a winner has been decided.
func (g *Game) Over() bool { return g.winner != NoPlayer }

// Dots returns p's dots in row-major order. Callers must not modify the slice.
func (g *Game) Dots(p Player) []*Dot {
	switch p {
	case Blue:
		return g.blueDots
	case Red:
		return g.redDots
	default:
		return nil
	}
}

// Links returns p's links in creation order. Callers must not modify the slice.
func (g *Game) Links(p Player) []Link {
	switch p {
	case Blue:
		return g.blueLinks
	case Red:
		return g.redLinks
	default:
		return nil
	}
}

// CurrentDots returns the dots of the side to move.
func (g *Game) CurrentDots() []*Dot { return g.Dots(g.turn) }

// CurrentLinks returns the links of the side to move.
func (g *Game) CurrentLinks() []Link { return g.Links(g.turn) }

// Dot returns p's dot at row, col or nil when out of the grid.
func (g *Game) Dot(p Player, row, col int) *Dot {
	if row < 0 || row >= p.Rows() || col < 0 || col >= p.Cols() {
		return nil
	}
	dots := g.Dots(p)
	if dots == nil {
		return nil
	}
	return dots[row*p.Cols()+col]
}

// Selected returns the dot picked as the start of the next link, if any.
func (g *Game) Selected() *Dot { return g.selected }

// Select marks d as the start of the next link.
func (g *Game) Select(d *Dot) {
	g.mustOwn(d)
	g.selected = d
}

// ClearSelection drops the selected dot.
func (g *Game) ClearSelection() { g.selected = nil }

// TryMakeLink attempts to link from and to for the current player and
// reports whether the link was made. A rejected attempt leaves the game unchanged.
func (g *Game) TryMakeLink(from, to *Dot) bool {
	return g.Play(from, to) == nil
}

// Play links from and to for the current player. On success it checks for
// a win and otherwise passes the turn. Rule violations are returned as errors;
// dots that are nil, identical or foreign to this game panic.
func (g *Game) Play(from, to *Dot) error {
	g.mustOwn(from)
	g.mustOwn(to)
	if from == to {
		panic("domain: link endpoints must differ")
	}
	if g.winner != NoPlayer {
		return ErrGameOver
	}
	if from.Player != g.turn || to.Player != g.turn {
		return ErrNotYourDot
	}
	if !AreAdjacent(from, to) {
		return ErrNotAdjacent
	}
	if LinkExists(from, to, g.Links(g.turn)) {
		return ErrAlreadyLinked
	}
	if WouldCross(from, to, g) {
		return ErrCrossing
	}

	g.appendLink(Link{From: from, To: to, Player: g.turn})

	if g.CheckWin(g.turn) {
		g.winner = g.turn
		return nil
	}
	g.turn = g.turn.Opponent()
	return nil
}

// Push applies m for the current player and passes the turn without
// validation or win detection. It exists for search, which must restore
// the game with a matching Pop.
func (g *Game) Push(m Move) {
	g.appendLink(Link{From: m.From, To: m.To, Player: g.turn})
	g.turn = g.turn.Opponent()
}

// Pop reverts the most recent Push.
func (g *Game) Pop() {
	g.turn = g.turn.Opponent()
	switch g.turn {
	case Blue:
		if n := len(g.blueLinks); n > 0 {
			g.blueLinks[n-1] = Link{}
			g.blueLinks = g.blueLinks[:n-1]
		}
	case Red:
		if n := len(g.redLinks); n > 0 {
			g.redLinks[n-1] = Link{}
			g.redLinks = g.redLinks[:n-1]
		}
	}
}

func (g *Game) appendLink(l Link) {
	if l.Player == Blue {
		g.blueLinks = append(g.blueLinks, l)
	} else {
		g.redLinks = append(g.redLinks, l)
	}
}

func (g *Game) mustOwn(d *Dot) {
	if d == nil {
		panic("domain: nil dot")
	}
	if g.Dot(d.Player, d.Row, d.Col) != d {
		panic(fmt.Sprintf("domain: %s dot (%d,%d) does not belong to this game", d.Player, d.Row, d.Col))
	}
}

// Snapshot is a copy of the mutable parts of a Game.
type Snapshot struct {
	Turn      Player
	Winner    Player
	Selected  *Dot
	BlueLinks []Link
	RedLinks  []Link
}

// Snapshot copies the turn, winner, selection and link lists.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Turn:      g.turn,
		Winner:    g.winner,
		Selected:  g.selected,
		BlueLinks: append([]Link(nil), g.blueLinks...),
		RedLinks:  append([]Link(nil), g.redLinks...),
	}
}
