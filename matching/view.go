// File: view.go
// Role: C1 — graph view adapter. Presents the undirected *core.Graph input
// as a directed twin-edge view over a dense vertex index space [0,n), the
// representation the search driver (C7) and its accelerators (C2-C5)
// operate on.
//
// Every undirected core.Edge {u,v} becomes two directed half-edges
// e1=(u->v), e2=(v->u) with twin(e1)=e2, twin(e2)=e1, sharing the
// original weight. Self-loops are skipped (no self-loops assumed for
// matching); parallel edges are preserved as distinct half-edge pairs.
package matching

import (
	"sort"

	"github.com/vlath-dev/lvlath/core"
)

// graphView is the C1 adapter: a directed twin-edge view of the input graph
// over a dense integer vertex space [0,n).
type graphView struct {
	n int // vertex count

	// half-edge arrays, indexed by half-edge id in [0, 2*m).
	to     []int     // target vertex of half-edge e
	twin   []int     // twin half-edge id
	weight []float64 // weight(e) == weight(twin(e))
	origID []int     // index into origEdgeID, shared by a half-edge and its twin

	// b0, b1 are mutable references into the blossom forest: the two
	// sub-blossoms that sat at this half-edge's endpoints the moment it
	// was last spliced into a ring (see blossom.go connect). They are
	// reset at the start of every search.
	b0, b1 []int

	// forward-star adjacency: head[v] is the first half-edge id with
	// source v, or -1; next[e] is the next half-edge sharing e's source.
	head []int
	next []int

	// bookkeeping to translate back to the caller's core.Graph.
	vertexID   []string          // vertex index -> core.Graph vertex ID
	vertexIdx  map[string]int    // core.Graph vertex ID -> vertex index
	origEdgeID []string          // origID index -> core.Graph edge ID
	matched    []int             // vertex -> half-edge id of its matched edge, or -1
}

// buildGraphView validates g and constructs the directed twin-edge view.
//
// Validation order: g != nil, !g.Directed() && !g.HasDirectedEdges(), g.Weighted().
func buildGraphView(g *core.Graph) (*graphView, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.Directed() || g.HasDirectedEdges() {
		return nil, ErrDirectedInput
	}
	if !g.Weighted() {
		return nil, ErrUnweightedGraph
	}

	ids := g.Vertices() // sorted, per core.Graph's convention
	n := len(ids)

	gv := &graphView{
		n:          n,
		vertexID:   ids,
		vertexIdx:  make(map[string]int, n),
		head:       make([]int, n),
		matched:    make([]int, n),
	}
	for i, id := range ids {
		gv.vertexIdx[id] = i
		gv.head[i] = -1
		gv.matched[i] = -1
	}

	edges := g.Edges()
	// Deterministic processing order: sort by edge ID so rebuilds are
	// reproducible regardless of map iteration order inside core.Graph.
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	m := 0
	for _, e := range edges {
		if e.From == e.To {
			continue // self-loops are not matching-eligible
		}
		m++
	}
	total := 2 * m
	gv.to = make([]int, total)
	gv.twin = make([]int, total)
	gv.weight = make([]float64, total)
	gv.origID = make([]int, total)
	gv.b0 = make([]int, total)
	gv.b1 = make([]int, total)
	gv.next = make([]int, total)
	gv.origEdgeID = make([]string, m)

	halfIdx := 0
	origIdx := 0
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		u := gv.vertexIdx[e.From]
		v := gv.vertexIdx[e.To]
		w := float64(e.Weight)

		eUV := halfIdx
		eVU := halfIdx + 1
		halfIdx += 2

		gv.to[eUV], gv.to[eVU] = v, u
		gv.twin[eUV], gv.twin[eVU] = eVU, eUV
		gv.weight[eUV], gv.weight[eVU] = w, w
		gv.origID[eUV], gv.origID[eVU] = origIdx, origIdx
		gv.b0[eUV], gv.b1[eUV] = -1, -1
		gv.b0[eVU], gv.b1[eVU] = -1, -1
		gv.origEdgeID[origIdx] = e.ID
		origIdx++

		gv.next[eUV] = gv.head[u]
		gv.head[u] = eUV
		gv.next[eVU] = gv.head[v]
		gv.head[v] = eVU
	}

	return gv, nil
}

// forEachOut invokes f for every half-edge e with source v.
func (gv *graphView) forEachOut(v int, f func(e int)) {
	for e := gv.head[v]; e != -1; e = gv.next[e] {
		f(e)
	}
}

// source returns the source vertex of half-edge e.
func (gv *graphView) source(e int) int { return gv.to[gv.twin[e]] }

// target returns the target vertex of half-edge e.
func (gv *graphView) target(e int) int { return gv.to[e] }

// resetSearchState clears the per-search b0/b1 mutable fields. Called at
// the start of every search (b0/b1 only matter while a blossom ring that
// references them is live; rings are rebuilt fresh by every search).
func (gv *graphView) resetSearchState() {
	for i := range gv.b0 {
		gv.b0[i] = -1
		gv.b1[i] = -1
	}
}
