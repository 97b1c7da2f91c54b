package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacencySymmetricAndIrreflexive(t *testing.T) {
	g := New(DefaultLayout)
	all := append(append([]*Dot(nil), g.Dots(Blue)...), g.Dots(Red)...)
	for _, a := range all {
		assert.False(t, AreAdjacent(a, a), "dot %v adjacent to itself", *a)
		for _, b := range all {
			assert.Equal(t, AreAdjacent(a, b), AreAdjacent(b, a))
		}
	}
}

func TestAdjacencyRules(t *testing.T) {
	g := New(DefaultLayout)
	assert.True(t, AreAdjacent(g.Dot(Blue, 0, 0), g.Dot(Blue, 0, 1)))
	assert.True(t, AreAdjacent(g.Dot(Blue, 0, 0), g.Dot(Blue, 1, 0)))
	assert.False(t, AreAdjacent(g.Dot(Blue, 0, 0), g.Dot(Blue, 1, 1)))
	assert.False(t, AreAdjacent(g.Dot(Blue, 0, 0), g.Dot(Blue, 0, 2)))
	assert.False(t, AreAdjacent(g.Dot(Blue, 0, 0), g.Dot(Red, 0, 1)))
	assert.False(t, AreAdjacent(nil, g.Dot(Red, 0, 1)))
}

func TestLinkExistsIsUnordered(t *testing.T) {
	g := New(DefaultLayout)
	a, b, c := g.Dot(Blue, 0, 0), g.Dot(Blue, 0, 1), g.Dot(Blue, 1, 1)
	links := []Link{{From: a, To: b, Player: Blue}}
	assert.True(t, LinkExists(a, b, links))
	assert.True(t, LinkExists(b, a, links))
	assert.False(t, LinkExists(b, c, links))
	assert.False(t, LinkExists(a, b, nil))
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name string
		seg  [8]float64
		want bool
	}{
		{"plus sign", [8]float64{0, 5, 10, 5, 5, 0, 5, 10}, true},
		{"x shape", [8]float64{0, 0, 10, 10, 0, 10, 10, 0}, true},
		{"shared endpoint", [8]float64{0, 0, 10, 0, 10, 0, 10, 10}, false},
		{"t junction at end", [8]float64{0, 5, 5, 5, 5, 0, 5, 10}, false},
		{"parallel", [8]float64{0, 0, 10, 0, 0, 1, 10, 1}, false},
		{"disjoint", [8]float64{0, 0, 1, 1, 5, 0, 6, -1}, false},
	}
	for _, tc := range cases {
		s := tc.seg
		got := segmentsIntersect(s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7])
		assert.Equal(t, tc.want, got, tc.name)
		// order of the two segments does not matter
		got = segmentsIntersect(s[4], s[5], s[6], s[7], s[0], s[1], s[2], s[3])
		assert.Equal(t, tc.want, got, tc.name+" swapped")
	}
}

func TestWouldCrossSeesBothPlayers(t *testing.T) {
	g := New(DefaultLayout)
	require.True(t, g.TryMakeLink(g.Dot(Blue, 1, 1), g.Dot(Blue, 2, 1)))
	// blue 1,1-2,1 blocks red 1,1-1,2
	assert.True(t, WouldCross(g.Dot(Red, 1, 1), g.Dot(Red, 1, 2), g))
	require.True(t, g.TryMakeLink(g.Dot(Red, 2, 2), g.Dot(Red, 3, 2)))
	// red 2,2-3,2 blocks blue 3,1-3,2
	assert.True(t, WouldCross(g.Dot(Blue, 3, 1), g.Dot(Blue, 3, 2), g))
	assert.False(t, WouldCross(g.Dot(Blue, 0, 0), g.Dot(Blue, 0, 1), g))
}

func TestZeroLayoutNeverCrosses(t *testing.T) {
	g := New(GridLayout{})
	require.True(t, g.TryMakeLink(g.Dot(Blue, 0, 0), g.Dot(Blue, 1, 0)))
	assert.False(t, WouldCross(g.Dot(Red, 0, 0), g.Dot(Red, 0, 1), g))
}

func TestWinIndependentOfLinkOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	redFill := [][4]int{{0, 0, 1, 0}, {1, 0, 2, 0}, {2, 0, 3, 0}, {0, 1, 1, 1}}
	for col := 0; col < BlueCols; col++ {
		order := rng.Perm(BlueRows - 1)
		g := New(DefaultLayout)
		for i, r := range order {
			g.Push(Move{From: g.Dot(Blue, r+1, col), To: g.Dot(Blue, r, col)})
			if i < len(order)-1 {
				assert.False(t, g.CheckWin(Blue), "column %d after %d links", col, i+1)
			}
			f := redFill[i]
			g.Push(Move{From: g.Dot(Red, f[0], f[1]), To: g.Dot(Red, f[2], f[3])})
		}
		assert.True(t, g.CheckWin(Blue), "column %d", col)
		assert.False(t, g.CheckWin(Red), "column %d", col)
	}

	blueFill := [][4]int{{4, 0, 4, 1}, {4, 1, 4, 2}, {4, 2, 4, 3}, {0, 1, 0, 2}}
	for row := 0; row < RedRows; row++ {
		order := rng.Perm(RedCols - 1)
		g := New(DefaultLayout)
		g.Push(Move{From: g.Dot(Blue, 0, 0), To: g.Dot(Blue, 0, 1)})
		for i, c := range order {
			g.Push(Move{From: g.Dot(Red, row, c+1), To: g.Dot(Red, row, c)})
			if i < len(order)-1 {
				assert.False(t, g.CheckWin(Red), "row %d after %d links", row, i+1)
			}
			f := blueFill[i]
			g.Push(Move{From: g.Dot(Blue, f[0], f[1]), To: g.Dot(Blue, f[2], f[3])})
		}
		assert.True(t, g.CheckWin(Red), "row %d", row)
		assert.False(t, g.CheckWin(Blue), "row %d", row)
	}
}
