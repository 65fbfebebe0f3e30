package usecase

// unionFind is a disjoint-set forest over the indices 0..n-1
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// components returns the member indices of each set. Sets are ordered by
// their lowest index and members keep ascending index order.
func (uf *unionFind) components() [][]int {
	byRoot := make(map[int]int)
	var out [][]int
	for i := range uf.parent {
		root := uf.find(i)
		slot, ok := byRoot[root]
		if !ok {
			slot = len(out)
			byRoot[root] = slot
			out = append(out, nil)
		}
		out[slot] = append(out[slot], i)
	}
	return out
}
