package domain

// Player identifies one side of the game.
type Player uint8

const (
	NoPlayer Player = iota
	Blue
	Red
)

// Grid dimensions. Blue connects top to bottom, red connects left to right.
const (
	BlueRows = 5
	BlueCols = 4
	RedRows  = 4
	RedCols  = 5
)

// Opponent returns the other side; NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Blue:
		return Red
	case Red:
		return Blue
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// Rows returns the number of grid rows owned by p.
func (p Player) Rows() int {
	if p == Red {
		return RedRows
	}
	return BlueRows
}

// Cols returns the number of grid columns owned by p.
func (p Player) Cols() int {
	if p == Red {
		return RedCols
	}
	return BlueCols
}

// Dot is one grid intersection owned by a player. X and Y are physical
// board coordinates used by the crossing test; Row and Col are grid logic.
type Dot struct {
	X, Y   float64
	Player Player
	Row    int
	Col    int
}

// OnStartSide reports whether d lies on its owner's start boundary.
func (d *Dot) OnStartSide() bool {
	if d.Player == Blue {
		return d.Row == 0
	}
	return d.Col == 0
}

// OnGoalSide reports whether d lies on its owner's goal boundary.
func (d *Dot) OnGoalSide() bool {
	if d.Player == Blue {
		return d.Row == BlueRows-1
	}
	return d.Col == RedCols-1
}

// Link is a drawn connection between two adjacent dots of the same player.
type Link struct {
	From   *Dot
	To     *Dot
	Player Player
}

// Move is a proposed connection.
type Move struct {
	From *Dot
	To   *Dot
}

// Layout places grid points on the physical board.
type Layout interface {
	Position(p Player, row, col int) (x, y float64)
}

// GridLayout interleaves the two grids: blue dots sit half a cell to the
// right of red columns, red dots half a cell below blue rows.
type GridLayout struct {
	Cell    float64
	OffsetX float64
	OffsetY float64
}

// DefaultLayout matches the 60px board of the browser client.
var DefaultLayout = GridLayout{Cell: 60, OffsetX: 60, OffsetY: 60}

func (l GridLayout) Position(p Player, row, col int) (float64, float64) {
	c := float64(col)
	r := float64(row)
	if p == Blue {
		return l.OffsetX + l.Cell*0.5 + c*l.Cell, l.OffsetY + r*l.Cell
	}
	return l.OffsetX + c*l.Cell, l.OffsetY + l.Cell*0.5 + r*l.Cell
}

// Width and Height give the canvas size needed to draw both grids.
func (l GridLayout) Width() float64  { return l.Cell*RedCols + l.OffsetX }
func (l GridLayout) Height() float64 { return l.Cell*BlueRows + l.OffsetY }
