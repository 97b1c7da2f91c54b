package domain

// disjointSet is a union-find over dot indices with path compression and
// union by rank.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(i int) int {
	for ds.parent[i] != i {
		ds.parent[i] = ds.parent[ds.parent[i]]
		i = ds.parent[i]
	}
	return i
}

func (ds *disjointSet) union(a, b int) {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return
	}
	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ds.parent[ra] = rb
	case ds.rank[ra] > ds.rank[rb]:
		ds.parent[rb] = ra
	default:
		ds.parent[rb] = ra
		ds.rank[ra]++
	}
}

// CheckWin reports whether p's links connect p's start side to p's goal
// side. The union-find is rebuilt on every call.
func (g *Game) CheckWin(p Player) bool {
	dots := g.Dots(p)
	if len(dots) == 0 {
		return false
	}
	cols := p.Cols()
	index := func(d *Dot) int { return d.Row*cols + d.Col }

	ds := newDisjointSet(len(dots))
	for _, l := range g.Links(p) {
		ds.union(index(l.From), index(l.To))
	}

	var starts, goals []int
	for i, d := range dots {
		if d.OnStartSide() {
			starts = append(starts, i)
		}
		if d.OnGoalSide() {
			goals = append(goals, i)
		}
	}
	for _, s := range starts {
		for _, e := range goals {
			if ds.find(s) == ds.find(e) {
				return true
			}
		}
	}
	return false
}
