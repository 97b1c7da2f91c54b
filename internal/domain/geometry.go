package domain

import "math"

const (
	parallelEpsilon = 0.0001
	endpointEpsilon = 0.001
)

// AreAdjacent reports whether two dots of the same player are one grid step
// apart horizontally or vertically.
func AreAdjacent(d1, d2 *Dot) bool {
	if d1 == nil || d2 == nil || d1.Player != d2.Player {
		return false
	}
	dr := absInt(d1.Row - d2.Row)
	dc := absInt(d1.Col - d2.Col)
	return (dr == 0 && dc == 1) || (dr == 1 && dc == 0)
}

// LinkExists reports whether links already connect the unordered pair {d1, d2}.
func LinkExists(d1, d2 *Dot, links []Link) bool {
	for _, l := range links {
		if (l.From == d1 && l.To == d2) || (l.From == d2 && l.To == d1) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segment (x1,y1)-(x2,y2) crosses
// (x3,y3)-(x4,y4) strictly inside both. Touching endpoints and parallel
// segments do not count.
func segmentsIntersect(x1, y1, x2, y2, x3, y3, x4, y4 float64) bool {
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < parallelEpsilon {
		return false
	}
	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom

	return t > endpointEpsilon && t < 1-endpointEpsilon &&
		u > endpointEpsilon && u < 1-endpointEpsilon
}

// WouldCross reports whether a link d1-d2 would cross any existing link of
// either player. Links share the physical board regardless of owner.
func WouldCross(d1, d2 *Dot, g *Game) bool {
	for _, links := range [2][]Link{g.blueLinks, g.redLinks} {
		for _, l := range links {
			if segmentsIntersect(d1.X, d1.Y, d2.X, d2.Y, l.From.X, l.From.Y, l.To.X, l.To.Y) {
				return true
			}
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
