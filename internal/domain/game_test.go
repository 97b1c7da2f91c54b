package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to apply a sequence of links given as {player, r1, c1, r2, c2}
func playLinks(t *testing.T, g *Game, links [][5]int) {
	t.Helper()
	for i, l := range links {
		p := Player(l[0])
		from, to := g.Dot(p, l[1], l[2]), g.Dot(p, l[3], l[4])
		require.NoError(t, g.Play(from, to), "link %d (%v)", i, l)
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := New(DefaultLayout)
	require.Equal(t, Blue, g.CurrentPlayer())
	require.Equal(t, NoPlayer, g.Winner())
	require.False(t, g.Over())
	require.Nil(t, g.Selected())
	require.Len(t, g.Dots(Blue), BlueRows*BlueCols)
	require.Len(t, g.Dots(Red), RedRows*RedCols)
	require.Empty(t, g.Links(Blue))
	require.Empty(t, g.Links(Red))

	for i, d := range g.Dots(Blue) {
		assert.Equal(t, Blue, d.Player)
		assert.Equal(t, i/BlueCols, d.Row)
		assert.Equal(t, i%BlueCols, d.Col)
	}
	for i, d := range g.Dots(Red) {
		assert.Equal(t, Red, d.Player)
		assert.Equal(t, i/RedCols, d.Row)
		assert.Equal(t, i%RedCols, d.Col)
	}
}

func TestLayoutPositions(t *testing.T) {
	g := New(DefaultLayout)
	b := g.Dot(Blue, 1, 2)
	assert.Equal(t, 60+30+2*60.0, b.X)
	assert.Equal(t, 60+60.0, b.Y)
	r := g.Dot(Red, 1, 2)
	assert.Equal(t, 60+2*60.0, r.X)
	assert.Equal(t, 60+30+60.0, r.Y)
	assert.Equal(t, 360.0, DefaultLayout.Width())
	assert.Equal(t, 360.0, DefaultLayout.Height())
}

func TestDotOutOfGrid(t *testing.T) {
	g := New(DefaultLayout)
	assert.Nil(t, g.Dot(Blue, BlueRows, 0))
	assert.Nil(t, g.Dot(Blue, 0, BlueCols))
	assert.Nil(t, g.Dot(Red, -1, 0))
	assert.Nil(t, g.Dot(NoPlayer, 0, 0))
	assert.NotNil(t, g.Dot(Red, 0, RedCols-1))
}

func TestCurrentAccessorsFollowTurn(t *testing.T) {
	g := New(DefaultLayout)
	require.Equal(t, g.Dots(Blue), g.CurrentDots())
	playLinks(t, g, [][5]int{{int(Blue), 0, 0, 1, 0}})
	require.Equal(t, Red, g.CurrentPlayer())
	require.Equal(t, g.Dots(Red), g.CurrentDots())
	require.Empty(t, g.CurrentLinks())
}

func TestValidLinkFlipsTurn(t *testing.T) {
	g := New(DefaultLayout)
	ok := g.TryMakeLink(g.Dot(Blue, 0, 0), g.Dot(Blue, 1, 0))
	require.True(t, ok)
	require.Len(t, g.Links(Blue), 1)
	require.Equal(t, Red, g.CurrentPlayer())
	require.Equal(t, Blue, g.Links(Blue)[0].Player)

	ok = g.TryMakeLink(g.Dot(Red, 0, 0), g.Dot(Red, 0, 1))
	require.False(t, ok, "red 0,0-0,1 crosses blue 0,0-1,0")
	ok = g.TryMakeLink(g.Dot(Red, 3, 0), g.Dot(Red, 3, 1))
	require.True(t, ok)
	require.Equal(t, Blue, g.CurrentPlayer())
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	g := New(DefaultLayout)
	playLinks(t, g, [][5]int{
		{int(Blue), 0, 1, 1, 1},
		{int(Red), 2, 0, 2, 1},
	})
	cases := []struct {
		name     string
		from, to *Dot
		err      error
	}{
		{"already linked", g.Dot(Blue, 1, 1), g.Dot(Blue, 0, 1), ErrAlreadyLinked},
		{"not adjacent", g.Dot(Blue, 0, 0), g.Dot(Blue, 2, 0), ErrNotAdjacent},
		{"diagonal", g.Dot(Blue, 0, 0), g.Dot(Blue, 1, 1), ErrNotAdjacent},
		{"opponent dots", g.Dot(Red, 0, 0), g.Dot(Red, 1, 0), ErrNotYourDot},
		{"mixed owners", g.Dot(Blue, 0, 0), g.Dot(Red, 0, 0), ErrNotYourDot},
	}
	for _, tc := range cases {
		before := g.Snapshot()
		require.ErrorIs(t, g.Play(tc.from, tc.to), tc.err, tc.name)
		require.False(t, g.TryMakeLink(tc.from, tc.to), tc.name)
		require.Equal(t, before, g.Snapshot(), tc.name)
	}

	// red 1,1-2,1 runs down x=120; blue 2,0-2,1 runs along y=180 through it
	g2 := New(DefaultLayout)
	playLinks(t, g2, [][5]int{
		{int(Blue), 0, 0, 1, 0},
		{int(Red), 1, 1, 2, 1},
	})
	before := g2.Snapshot()
	require.ErrorIs(t, g2.Play(g2.Dot(Blue, 2, 0), g2.Dot(Blue, 2, 1)), ErrCrossing)
	require.False(t, g2.TryMakeLink(g2.Dot(Blue, 2, 0), g2.Dot(Blue, 2, 1)))
	require.Equal(t, before, g2.Snapshot())
}

func TestBlockedMoveScenario(t *testing.T) {
	g := New(DefaultLayout)
	// blue vertical at column 2 between rows 0 and 1
	playLinks(t, g, [][5]int{{int(Blue), 0, 2, 1, 2}})
	// red horizontal across it on row 0
	require.True(t, WouldCross(g.Dot(Red, 0, 2), g.Dot(Red, 0, 3), g))
	require.False(t, g.TryMakeLink(g.Dot(Red, 0, 2), g.Dot(Red, 0, 3)))
	// the neighbouring segment only touches the grid, never the link
	require.False(t, WouldCross(g.Dot(Red, 0, 1), g.Dot(Red, 0, 2), g))
}

func TestBlueWinsStraightColumn(t *testing.T) {
	g := New(DefaultLayout)
	playLinks(t, g, [][5]int{
		{int(Blue), 0, 1, 1, 1},
		{int(Red), 0, 0, 1, 0},
		{int(Blue), 1, 1, 2, 1},
		{int(Red), 1, 0, 2, 0},
		{int(Blue), 2, 1, 3, 1},
		{int(Red), 2, 0, 3, 0},
	})
	require.False(t, g.Over())
	require.Equal(t, Blue, g.CurrentPlayer())

	require.True(t, g.TryMakeLink(g.Dot(Blue, 3, 1), g.Dot(Blue, 4, 1)))
	require.Equal(t, Blue, g.Winner())
	require.Equal(t, Blue, g.CurrentPlayer(), "turn stays with the winner")
	require.True(t, g.CheckWin(Blue))
	require.False(t, g.CheckWin(Red))
}

func TestRedWinsStraightRow(t *testing.T) {
	g := New(DefaultLayout)
	playLinks(t, g, [][5]int{
		{int(Blue), 0, 0, 0, 1},
		{int(Red), 3, 0, 3, 1},
		{int(Blue), 0, 1, 0, 2},
		{int(Red), 3, 1, 3, 2},
		{int(Blue), 0, 2, 0, 3},
		{int(Red), 3, 2, 3, 3},
		{int(Blue), 1, 0, 1, 1},
	})
	require.True(t, g.TryMakeLink(g.Dot(Red, 3, 3), g.Dot(Red, 3, 4)))
	require.Equal(t, Red, g.Winner())
}

func TestGameOverBlocksFurtherMoves(t *testing.T) {
	g := New(DefaultLayout)
	playLinks(t, g, [][5]int{
		{int(Blue), 0, 0, 1, 0},
		{int(Red), 0, 4, 1, 4},
		{int(Blue), 1, 0, 2, 0},
		{int(Red), 1, 4, 2, 4},
		{int(Blue), 2, 0, 3, 0},
		{int(Red), 2, 4, 3, 4},
		{int(Blue), 3, 0, 4, 0},
	})
	require.Equal(t, Blue, g.Winner())
	before := g.Snapshot()
	require.ErrorIs(t, g.Play(g.Dot(Blue, 0, 3), g.Dot(Blue, 1, 3)), ErrGameOver)
	require.Equal(t, before, g.Snapshot())
}

func TestMalformedMovesPanic(t *testing.T) {
	g := New(DefaultLayout)
	other := New(DefaultLayout)
	d := g.Dot(Blue, 0, 0)
	require.Panics(t, func() { g.Play(d, d) })
	require.Panics(t, func() { g.Play(nil, d) })
	require.Panics(t, func() { g.Play(d, other.Dot(Blue, 1, 0)) })
	require.Panics(t, func() { g.Select(&Dot{Player: Blue}) })
}

func TestSelection(t *testing.T) {
	g := New(DefaultLayout)
	d := g.Dot(Blue, 2, 2)
	g.Select(d)
	require.Same(t, d, g.Selected())
	g.ClearSelection()
	require.Nil(t, g.Selected())
}

func TestPushPopRestoresState(t *testing.T) {
	g := New(DefaultLayout)
	playLinks(t, g, [][5]int{{int(Blue), 0, 0, 1, 0}})
	before := g.Snapshot()

	g.Push(Move{From: g.Dot(Red, 0, 0), To: g.Dot(Red, 1, 0)})
	require.Equal(t, Blue, g.CurrentPlayer())
	require.Len(t, g.Links(Red), 1)
	g.Push(Move{From: g.Dot(Blue, 3, 3), To: g.Dot(Blue, 4, 3)})
	require.Len(t, g.Links(Blue), 2)

	g.Pop()
	g.Pop()
	require.Equal(t, before, g.Snapshot())
}
