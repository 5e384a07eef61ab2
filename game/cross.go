package game

// Cross is a connected group of intersecting snakes, flipped as one unit.
type Cross struct {
	Snakes []Snake
}

// Resolve folds the member tendencies into one. ok is false when two
// members want opposite colours, in which case the cross is stuck.
func (c Cross) Resolve() (tendency Tendency, ok bool) {
	tendency = Neutral
	for _, snake := range c.Snakes {
		if tendency == Neutral {
			tendency = snake.Tendency
		} else if snake.Tendency != Neutral && snake.Tendency != tendency {
			return Neutral, false
		}
	}
	return tendency, true
}

// disjointSet is an array-backed union-find with union by rank and path halving.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

func (ds *disjointSet) union(x, y int) {
	rx, ry := ds.find(x), ds.find(y)
	if rx == ry {
		return
	}
	switch {
	case ds.rank[rx] < ds.rank[ry]:
		ds.parent[rx] = ry
	case ds.rank[rx] > ds.rank[ry]:
		ds.parent[ry] = rx
	default:
		ds.parent[ry] = rx
		ds.rank[rx]++
	}
}

// FindCrosses groups snakes into crosses. Crosses come out ordered by
// their first member, members keep the order of snakes.
func FindCrosses(snakes []Snake) []Cross {
	ds := newDisjointSet(len(snakes))

	var rows, columns []int
	for i, snake := range snakes {
		if snake.Axis == Row {
			rows = append(rows, i)
		} else {
			columns = append(columns, i)
		}
	}

	// Bucket the smaller group by fixed index, scan it with the larger one
	less, more := columns, rows
	if len(rows) < len(columns) {
		less, more = rows, columns
	}
	var buckets [N][]int
	for _, i := range less {
		buckets[snakes[i].Index] = append(buckets[snakes[i].Index], i)
	}
	for _, i := range more {
		s := snakes[i]
		for _, bucket := range buckets[s.Begin : s.End+1] {
			for _, j := range bucket {
				if s.Intersects(snakes[j]) {
					ds.union(i, j)
				}
			}
		}
	}

	crosses := make([]Cross, 0, len(snakes))
	slot := make(map[int]int, len(snakes))
	for i, snake := range snakes {
		root := ds.find(i)
		k, ok := slot[root]
		if !ok {
			k = len(crosses)
			slot[root] = k
			crosses = append(crosses, Cross{})
		}
		crosses[k].Snakes = append(crosses[k].Snakes, snake)
	}
	return crosses
}

// flip runs exactly one resolution pass: snakes and crosses are computed
// on the receiver and flipped cells are not scanned again.
func (g Grid) flip() Grid {
	crosses := FindCrosses(FindSnakes(g))
	for _, cross := range crosses {
		if _, ok := cross.Resolve(); !ok {
			continue
		}
		for _, snake := range cross.Snakes {
			snake.paint(&g)
		}
	}
	return g
}
