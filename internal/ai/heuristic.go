package ai

import (
	"container/heap"

	"github.com/jaminalder/codex-bridgit/internal/domain"
)

// Unreachable is the distance reported when a player can no longer connect
// their sides.
const Unreachable = 1000

// blockWeight favours blocking the opponent over advancing.
const blockWeight = 1.5

// Evaluate scores g from p's point of view: the opponent's remaining
// distance, weighted, minus p's own. Higher is better for p.
func Evaluate(g *domain.Game, p domain.Player) float64 {
	own := ShortestPath(g, p)
	opp := ShortestPath(g, p.Opponent())
	return float64(opp)*blockWeight - float64(own)
}

type edge struct {
	to   int
	cost int
}

// ShortestPath returns the fewest links p still needs to connect start side
// to goal side. Adjacent dots already linked cost 0, linkable pairs cost 1,
// and pairs blocked by a crossing are not traversable.
func ShortestPath(g *domain.Game, p domain.Player) int {
	dots := g.Dots(p)
	if len(dots) == 0 {
		return Unreachable
	}
	links := g.Links(p)
	cols := p.Cols()

	graph := make([][]edge, len(dots))
	addEdge := func(i, j int) {
		d1, d2 := dots[i], dots[j]
		switch {
		case domain.LinkExists(d1, d2, links):
			graph[i] = append(graph[i], edge{to: j, cost: 0})
			graph[j] = append(graph[j], edge{to: i, cost: 0})
		case !domain.WouldCross(d1, d2, g):
			graph[i] = append(graph[i], edge{to: j, cost: 1})
			graph[j] = append(graph[j], edge{to: i, cost: 1})
		}
	}
	for i, d := range dots {
		if d.Col+1 < cols {
			addEdge(i, i+1)
		}
		if d.Row+1 < p.Rows() {
			addEdge(i, i+cols)
		}
	}

	dist := make([]int, len(dots))
	for i := range dist {
		dist[i] = Unreachable
	}
	pq := make(frontier, 0, len(dots))
	for i, d := range dots {
		if d.OnStartSide() {
			dist[i] = 0
			pq = append(pq, &frontierItem{node: i})
		}
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		it := heap.Pop(&pq).(*frontierItem)
		if it.dist > dist[it.node] {
			continue // stale
		}
		if dots[it.node].OnGoalSide() {
			// first goal popped carries the minimum distance
			return it.dist
		}
		for _, e := range graph[it.node] {
			nd := it.dist + e.cost
			if nd < dist[e.to] {
				dist[e.to] = nd
				heap.Push(&pq, &frontierItem{node: e.to, dist: nd})
			}
		}
	}
	return Unreachable
}

type frontierItem struct {
	node int
	dist int
}

// frontier is a min-heap on distance with lazy decrease-key.
type frontier []*frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return it
}
