package unionfind

// UnionFind is a disjoint-set structure over the integers [0,N). It
// supports the DFS solver's connectivity pruning (Prune 3): as doors are
// assigned, rooms joined by a determined door are merged, and a partial map
// whose fully-determined component cannot still grow to span N rooms is
// dead.
type UnionFind struct {
	parent []int
	rank   []int
	size   []int
}

// New creates a UnionFind over n singleton sets {0}, {1}, ..., {n-1}.
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Find returns the representative of x's set, compressing the path from x
// to the root as it walks up.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

// Union merges the sets containing x and y, attaching the shorter tree
// under the taller one's root. Returns true if the sets were distinct (a
// merge happened), false if x and y were already in the same set.
func (uf *UnionFind) Union(x, y int) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Connected reports whether x and y are in the same set.
func (uf *UnionFind) Connected(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

// SetSize returns the number of elements in x's set.
func (uf *UnionFind) SetSize(x int) int {
	return uf.size[uf.Find(x)]
}

// Clone returns an independent copy, so a search frame can branch without
// mutating its sibling's union-find state.
func (uf *UnionFind) Clone() *UnionFind {
	clone := &UnionFind{
		parent: make([]int, len(uf.parent)),
		rank:   make([]int, len(uf.rank)),
		size:   make([]int, len(uf.size)),
	}
	copy(clone.parent, uf.parent)
	copy(clone.rank, uf.rank)
	copy(clone.size, uf.size)
	return clone
}
