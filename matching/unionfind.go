// File: unionfind.go
// Role: C2 — union-find over even blossoms. Groups the vertices belonging
// to the current top-level even blossom; find/union run in O(alpha(n))
// amortized via path compression and union by rank.
//
// Grounded on the teacher library's prim_kruskal.Kruskal disjoint-set
// (path compression + union by rank over a map[string]string); adapted
// here to the dense int vertex space and augmented with a per-root
// payload (the top-even-blossom owning the class), since C7 must resolve
// an even vertex straight to its blossom in O(alpha(n)).
package matching

// evenUnionFind is C2: union-find over vertices currently inside a
// top-level even blossom. The payload of a root is the blossom id that
// owns that equivalence class; querying payload(v) for a non-even vertex
// is a caller bug (undefined, per spec).
type evenUnionFind struct {
	parent  []int
	rank    []int
	payload []int // indexed by (eventual) root; valid only at roots
}

// newEvenUnionFind allocates a union-find over n singleton classes, each
// initially payload-less (-1).
func newEvenUnionFind(n int) *evenUnionFind {
	uf := &evenUnionFind{
		parent:  make([]int, n),
		rank:    make([]int, n),
		payload: make([]int, n),
	}
	uf.reset()
	return uf
}

// reset restores n singleton classes, discarding all unions and payloads.
// Called at the start of every search.
func (uf *evenUnionFind) reset() {
	for i := range uf.parent {
		uf.parent[i] = i
		uf.rank[i] = 0
		uf.payload[i] = -1
	}
}

// find returns the representative of x's class, path-compressing along the way.
func (uf *evenUnionFind) find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

// union merges the classes of a and b, keeping whichever root's payload
// the caller sets afterwards via setPayload (union itself does not decide
// which payload survives, since the caller always installs a fresh
// blossom id on the merged class immediately after).
func (uf *evenUnionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// setPayload installs blossomID as the payload of x's class.
func (uf *evenUnionFind) setPayload(x int, blossomID int) {
	uf.payload[uf.find(x)] = blossomID
}

// payloadOf returns the blossom id owning x's class. Callers must only
// invoke this on vertices known to be currently even.
func (uf *evenUnionFind) payloadOf(x int) int {
	return uf.payload[uf.find(x)]
}

// makeSingleton isolates x into its own fresh class with the given
// payload, used when Expand produces new even sub-blossoms: each gets
// rebuilt from scratch rather than split out of the old class.
func (uf *evenUnionFind) makeSingleton(x int, blossomID int) {
	uf.parent[x] = x
	uf.rank[x] = 0
	uf.payload[x] = blossomID
}
