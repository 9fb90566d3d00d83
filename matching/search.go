// File: search.go
// Role: C7 — the primal-dual search driver. A worker owns one graph view
// (C1) plus all four accelerators (C2-C5) and the blossom forest (C6),
// and runs the outer loop of searches described in spec.md 4.7.
//
// Dual sign convention (spec.md 3, "Dual variables"): an even vertex's
// dual decreases by one unit per unit of delta, an odd vertex's dual
// increases by one unit per unit of delta, an even blossom's z increases
// by two units per unit of delta, an odd blossom's z decreases by two
// units per unit of delta. Every EdgeEvent.slackBar stored in C3/C4 is
// the absolute future delta at which the edge's slack reaches zero,
// computed from the current delta and the endpoints' current duals -
// this is what lets C7 read growEvents/expandEvents/smf minimums
// directly as delta candidates with no further adjustment beyond the C5
// deltaOdd correction and the C4 /2 division spec.md 4.5/4.7 specify.
package matching

import "math"

type worker struct {
	gv *graphView
	uf *evenUnionFind
	sf *splitFindMin
	sm *smf
	bf *blossomForest

	growEvents   *eventHeap
	expandEvents *eventHeap

	y0    []float64 // base dual per vertex, persists across searches
	delta float64

	vToSMFId     []int       // vertex -> smf node id, -1 if unassigned this search
	vToGrowEvent []edgeEvent // per-vertex current best grow-event candidate

	opts      Options
	searchIdx int
	visitGen  int
}

func newWorker(gv *graphView, opts Options) *worker {
	n := gv.n
	w := &worker{
		gv:           gv,
		uf:           newEvenUnionFind(n),
		sf:           newSplitFindMin(n),
		sm:           newSMF(2 * n),
		bf:           newBlossomForest(n),
		growEvents:   newEventHeap(),
		expandEvents: newEventHeap(),
		y0:           make([]float64, n),
		vToSMFId:     make([]int, n),
		vToGrowEvent: make([]edgeEvent, n),
		opts:         opts,
	}
	maxW := 0.0
	for _, wt := range gv.weight {
		if wt > maxW {
			maxW = wt
		}
	}
	for v := 0; v < n; v++ {
		w.y0[v] = maxW / 2
		w.vToGrowEvent[v] = nullEvent
	}
	return w
}

func (w *worker) find0(v int) int { return w.uf.payloadOf(v) }
func (w *worker) find1(v int) int { return w.sf.findBlossom(v) }

// topBlossom resolves v's current top-level blossom: through C2 if v is
// even, else through C3 (spec.md 4.6). Per spec.md 9's note, the
// vertex-keyed variant is used exclusively; there is no blossom-keyed path.
func (w *worker) topBlossom(v int) int {
	if w.bf.isEven[v] {
		return w.find0(v)
	}
	return w.find1(v)
}

// yVal returns vertex v's current dual value.
func (w *worker) yVal(v int) float64 {
	top := w.topBlossom(v)
	switch {
	case w.bf.isEven[top]:
		return w.y0[v] - (w.delta - w.bf.delta0[top])
	case w.bf.root[top] != -1:
		return w.y0[v] + (w.delta - w.bf.delta1[top])
	default:
		return w.y0[v]
	}
}

func (w *worker) isTrivial(b int) bool { return w.bf.child[b] == -1 }

// lcaInSearchTree climbs treeParentEdge chains in lockstep, marking with
// lastVisit generations, and returns the first doubly-marked blossom.
func (w *worker) lcaInSearchTree(b1, b2 int) int {
	w.visitGen++
	gen := w.visitGen
	for x := b1; ; {
		w.bf.lastVisit[x] = gen
		if w.bf.treeParentEdge[x] == -1 {
			break
		}
		x = w.topBlossom(w.gv.source(w.bf.treeParentEdge[x]))
	}
	for x := b2; ; {
		if w.bf.lastVisit[x] == gen {
			return x
		}
		if w.bf.treeParentEdge[x] == -1 {
			return x
		}
		x = w.topBlossom(w.gv.source(w.bf.treeParentEdge[x]))
	}
}

// --- Search begin -----------------------------------------------------

func (w *worker) searchBegin() {
	w.gv.resetSearchState()
	w.uf.reset()
	w.sf.reset()
	w.sm.clear()
	w.growEvents.clear()
	w.expandEvents.clear()
	w.delta = 0
	for v := range w.vToSMFId {
		w.vToSMFId[v] = -1
		w.vToGrowEvent[v] = nullEvent
	}
	w.bf.resetForNextSearch()

	// Collect current top-level blossoms: those with parent == -1.
	var tops []int
	for b := range w.bf.parent {
		if w.bf.parent[b] == -1 {
			tops = append(tops, b)
		}
	}

	for _, b := range tops {
		base := w.bf.base[b]
		if w.gv.matched[base] != -1 {
			// Out.
			verts := w.bf.verticesSlice(b)
			begin, end := w.sf.allocateGroup(verts, b)
			w.bf.find1Begin[b], w.bf.find1End[b] = begin, end
			w.bf.delta1[b] = 0
		}
	}
	// Even roots: mark every even-root vertex isEven=true across ALL top
	// blossoms before inserting any grow/blossom event. insertGrowEvents-
	// FromVertex/insertBlossomEventsFromVertex branch on a neighbor's
	// isEven flag to tell a not-yet-visited even root apart from a real
	// Odd/Out target; interleaving the marking and the event insertion
	// per-blossom (as a single combined loop would) lets an event probe
	// reach a sibling even root before its isEven flag is set, routing it
	// into the split-find-min Odd/Out path even though it was never given
	// a slot there - a guaranteed out-of-range index in splitfind.go.
	var evenRoots []int
	for _, b := range tops {
		base := w.bf.base[b]
		if w.gv.matched[base] == -1 {
			w.bf.root[b] = base
			w.bf.delta0[b] = 0
			w.bf.isEven[b] = true
			verts := w.bf.verticesSlice(b)
			root := w.sm.initTree()
			for _, v := range verts {
				w.bf.isEven[v] = true
				w.uf.makeSingleton(v, b)
				id := w.sm.addLeaf(root)
				w.vToSMFId[v] = id
			}
			for i := 1; i < len(verts); i++ {
				w.uf.union(verts[0], verts[i])
				w.uf.setPayload(verts[0], b)
			}
			evenRoots = append(evenRoots, verts...)
		}
	}
	for _, v := range evenRoots {
		w.insertGrowEventsFromVertex(v)
		w.insertBlossomEventsFromVertex(v)
	}
}

// --- 4.7.C / 4.7.D ------------------------------------------------------

func (w *worker) insertGrowEventsFromVertex(u int) {
	w.gv.forEachOut(u, func(e int) {
		v := w.gv.target(e)
		if w.bf.isEven[v] {
			return
		}
		slackBar := w.delta + w.yVal(u) + w.y0[v] - w.gv.weight[e]
		cand := edgeEvent{edge: e, slackBar: slackBar}
		if lessEvent(cand, w.vToGrowEvent[v]) {
			w.vToGrowEvent[v] = cand
			lowered := w.sf.decreaseKey(v, cand)
			V := w.find1(v)
			if lowered && w.bf.root[V] == -1 {
				_, minIdx := w.sf.findMin(v)
				if minIdx != -1 {
					key, _ := w.sf.findMin(v)
					w.growEvents.insertOrDecrease(V, w.bf.deltaOdd[V]+key.slackBar)
				}
			}
		}
	})
}

func (w *worker) insertBlossomEventsFromVertex(u int) {
	w.gv.forEachOut(u, func(e int) {
		v := w.gv.target(e)
		if !w.bf.isEven[v] {
			return
		}
		if w.find0(v) == w.find0(u) {
			return
		}
		slackBar := (w.delta + w.yVal(u)) + (w.delta + w.yVal(v)) - w.gv.weight[e]
		a, b := w.vToSMFId[u], w.vToSMFId[v]
		if a == -1 || b == -1 {
			return
		}
		w.sm.addNonTreeEdge(a, b, edgeEvent{edge: e, slackBar: slackBar})
	})
}

// --- Inner loop ---------------------------------------------------------

type stepKind int

const (
	stepNone stepKind = iota
	stepGrow
	stepBlossom
	stepAugment
	stepExpand
	stepEnd
)

// runInnerLoop runs one search to completion, returning true iff it ended
// via an augmentation (so the outer loop should keep searching).
//
// Tie-break order per spec.md 4.7.2: grow beats blossom/augment beats
// expand; a blossom-step tie against an augment-step resolves to augment
// (handled inside blossomOrAugmentStep itself, since both share the delta3
// candidate).
func (w *worker) runInnerLoop() bool {
	for {
		delta1 := math.Inf(1)
		if !w.opts.Perfect {
			delta1 = w.delta + w.minEvenDual()
		}

		growV, growKey, hasGrow := w.growEvents.peekMin()
		smfEv, smfIdx, hasSMF := w.sm.findMinNonTreeEdge()
		expandV, expandKey, hasExpand := w.expandEvents.peekMin()

		best := math.Inf(1)
		kind := stepEnd
		if hasGrow && growKey < best {
			best, kind = growKey, stepGrow
		}
		if hasSMF {
			d3 := smfEv.slackBar / 2
			if d3 < best-epsTieBreak {
				best, kind = d3, stepBlossom
			}
		}
		if hasExpand && expandKey < best-epsTieBreak {
			best, kind = expandKey, stepExpand
		}

		if delta1 < best-epsTieBreak {
			// No event can fire without driving some Even vertex's dual
			// negative; stop here instead, advancing delta up to the
			// bound so searchEnd commits duals at exactly zero for the
			// vertex that hit it (spec.md 4.7.2's delta1).
			if delta1 > w.delta {
				w.delta = delta1
			}
			return false
		}
		if math.IsInf(best, 1) {
			return false
		}
		if best < w.delta-w.opts.Epsilon {
			panic(ErrNumericInfeasible)
		}
		w.delta = best

		switch kind {
		case stepGrow:
			w.growStep(growV)
		case stepBlossom:
			if w.blossomOrAugmentStep(smfIdx, smfEv) {
				return true
			}
		case stepExpand:
			w.expandStep(expandV)
		default:
			return false
		}
	}
}

const epsTieBreak = 1e-9

// minEvenDual returns the minimum current dual value among Even vertices -
// the remaining room, in delta units, before continuing the search would
// drive some Even vertex's dual below zero. This is spec.md 4.7.2's delta1
// bound: vertex duals must stay non-negative so an unmatched vertex is
// always dual-feasible at y=0, which is what keeps a negative-weight edge
// from ever being forced tight and augmented into a non-perfect matching.
// Perfect-matching searches never call this (see runInnerLoop): requiring
// every vertex matched means vertex duals are allowed to go negative.
func (w *worker) minEvenDual() float64 {
	m := math.Inf(1)
	for v := 0; v < w.gv.n; v++ {
		if w.bf.isEven[v] {
			if val := w.yVal(v); val < m {
				m = val
			}
		}
	}
	return m
}

// --- 4.7.A GrowStep -------------------------------------------------------

func (w *worker) growStep(V int) {
	w.growEvents.remove(V)
	base := w.bf.base[V]
	ev, v := w.sf.findMin(base)
	if v == -1 {
		return
	}
	e := ev.edge
	u := w.gv.source(e)
	U := w.find0(u)

	w.bf.root[V] = w.bf.root[U]
	w.bf.treeParentEdge[V] = w.gv.twin[e]
	w.bf.delta1[V] = w.delta
	if !w.isTrivial(V) {
		w.expandEvents.insertOrDecrease(V, w.bf.z0[V]/2+w.bf.delta1[V])
	}

	chain := w.computePath(V, v)
	parent := w.vToSMFId[u]
	for _, node := range chain {
		id := w.sm.addLeaf(parent)
		w.vToSMFId[node] = id
		parent = id
	}

	m := w.gv.matched[base]
	VV := w.topBlossom(w.gv.target(m))
	w.bf.root[VV] = w.bf.root[U]
	w.bf.treeParentEdge[VV] = w.gv.twin[m]
	w.growEvents.remove(VV)
	id := w.sm.addLeaf(parent)
	w.vToSMFId[w.bf.base[VV]] = id
	w.makeEven(VV)
}

// computePath returns the chain of vertices from v up to V.base within
// blossom V, walking the ring from v's entry child to V's base child.
func (w *worker) computePath(V, v int) []int {
	if w.isTrivial(V) {
		return []int{v}
	}
	entry := v
	for w.bf.parent[entry] != V {
		entry = w.bf.parent[entry]
	}
	baseChild := w.bf.child[V]
	chain := []int{v}
	cur := entry
	for cur != baseChild {
		cur = w.bf.right[cur]
		chain = append(chain, w.bf.base[cur])
	}
	return chain
}

// --- 4.7.B / 4.7.E BlossomStep & AugmentStep -----------------------------

// blossomOrAugmentStep dispatches on whether the two endpoints share a
// tree root. Returns true iff it performed an augmentation.
func (w *worker) blossomOrAugmentStep(idx int, ev edgeEvent) bool {
	w.sm.discard(idx)
	e := ev.edge
	u, v := w.gv.source(e), w.gv.target(e)
	U, V := w.find0(u), w.find0(v)
	if U == V {
		return false
	}
	if w.bf.root[U] == w.bf.root[V] {
		w.blossomStep(e)
		return false
	}
	w.augmentStep(e)
	return true
}

func (w *worker) blossomStep(e int) {
	u, v := w.gv.source(e), w.gv.target(e)
	U, V := w.find0(u), w.find0(v)
	if U == V {
		return
	}
	base := w.lcaInSearchTree(U, V)

	N := w.bf.allocate(w.bf.base[base])
	w.bf.root[N] = w.bf.root[base]
	w.bf.treeParentEdge[N] = w.bf.treeParentEdge[base]
	w.bf.isEven[N] = true
	w.bf.child[N] = base
	w.bf.delta0[N] = w.delta

	var toUnion []int
	var evenVerts []int

	attach := func(side int, sideEdge int) {
		cur := side
		prevEdge := sideEdge
		for cur != base {
			next := w.topBlossom(w.gv.source(w.bf.treeParentEdge[cur]))
			if w.bf.isEven[cur] {
				if !w.isTrivial(cur) {
					w.bf.z0[cur] = w.bf.dualVal(cur, w.delta)
				}
				w.bf.parent[cur] = N
				w.bf.connect(w.gv, next, cur, prevEdge, false)
				toUnion = append(toUnion, w.bf.base[cur])
			} else {
				w.bf.deltaOdd[cur] += w.delta - w.bf.delta1[cur]
				if !w.isTrivial(cur) {
					w.bf.z0[cur] = w.bf.dualVal(cur, w.delta)
				}
				w.bf.parent[cur] = N
				w.bf.connect(w.gv, next, cur, prevEdge, false)
				w.expandEvents.remove(cur)
				for _, vv := range w.bf.verticesSlice(cur) {
					w.bf.isEven[vv] = true
					if w.vToSMFId[vv] == -1 {
						topID := w.topSMFNode(cur)
						id := w.sm.addLeaf(topID)
						w.vToSMFId[vv] = id
					} else {
						w.sm.mergeSubTrees(w.vToSMFId[vv], w.topSMFNode(cur))
					}
					toUnion = append(toUnion, vv)
					evenVerts = append(evenVerts, vv)
				}
			}
			prevEdge = w.bf.treeParentEdge[cur]
			cur = next
		}
	}
	attach(U, w.gv.twin[e])
	attach(V, e)

	for _, vv := range toUnion {
		w.uf.union(w.bf.base[base], vv)
	}
	w.uf.setPayload(w.bf.base[base], N)

	for _, vv := range evenVerts {
		w.insertGrowEventsFromVertex(vv)
		w.insertBlossomEventsFromVertex(vv)
	}
}

// topSMFNode returns an SMF node id suitable as a merge anchor for
// blossom b: the first member vertex's SMF id found.
func (w *worker) topSMFNode(b int) int {
	var found = -1
	w.bf.verticesOf(b, func(v int) {
		if found == -1 && w.vToSMFId[v] != -1 {
			found = w.vToSMFId[v]
		}
	})
	return found
}

func (w *worker) augmentStep(bridge int) {
	u, v := w.gv.source(bridge), w.gv.target(bridge)
	w.augmentSide(u)
	w.augmentSide(v)
	w.gv.matched[u] = bridge
	w.gv.matched[v] = w.gv.twin[bridge]
}

// augmentSide walks from u up to its tree root, toggling matched edges on
// even-to-odd transitions, straightening each blossom passed through.
func (w *worker) augmentSide(u int) {
	cur := u
	for {
		top := w.topBlossom(cur)
		if w.bf.treeParentEdge[top] == -1 {
			w.augmentPath(top, cur)
			break
		}
		pe := w.bf.treeParentEdge[top]
		w.augmentPath(top, cur)
		parentVertex := w.gv.source(pe)
		w.gv.matched[w.gv.target(pe)] = w.gv.twin[pe]
		w.gv.matched[parentVertex] = pe
		cur = parentVertex
	}
}

// augmentPath rebases blossom b so that entry vertex u becomes its new
// base, rewriting matched[] along the ring it traverses. Trivial blossoms
// are a no-op.
func (w *worker) augmentPath(b, u int) {
	if w.isTrivial(b) {
		return
	}
	if w.bf.base[b] == u {
		return
	}
	entry := u
	for w.bf.parent[entry] != b {
		entry = w.bf.parent[entry]
	}
	baseChild := w.bf.child[b]
	if entry == baseChild {
		w.augmentPath(entry, u)
		return
	}
	// Walk from entry around the ring back to baseChild, pairing
	// consecutive siblings via their connecting edges as new matches.
	cur := entry
	for cur != baseChild {
		nxt := w.bf.right[cur]
		edge := w.bf.toRightEdge[cur]
		w.gv.matched[w.gv.source(edge)] = edge
		w.gv.matched[w.gv.target(edge)] = w.gv.twin[edge]
		cur = nxt
	}
	w.augmentPath(entry, u)
	w.bf.base[b] = w.bf.base[entry]
	w.bf.child[b] = entry
}

// --- 4.7.F ExpandStep -----------------------------------------------------

func (w *worker) expandStep(B int) {
	w.expandEvents.remove(B)

	topVertex := w.gv.source(w.bf.treeParentEdge[B])

	base := w.bf.base[B]
	for w.bf.parent[base] != B {
		base = w.bf.parent[base]
	}
	topChild := topVertex
	for w.bf.parent[topChild] != B {
		topChild = w.bf.parent[topChild]
	}

	for _, ch := range w.bf.verticesOfDirectChildren(B) {
		w.bf.parent[ch] = -1
	}
	w.bf.deltaOdd[B] += w.delta - w.bf.delta1[B]
	w.bf.delta0[B] = w.delta

	oldRoot := w.bf.root[B]
	oldTPE := w.bf.treeParentEdge[B]

	cur := topChild
	goingRight := true
	if w.bf.right[topChild] != -1 {
		// Determine walk direction toward base via matching at topChild.
		if w.bf.toRightEdge[topChild] != -1 && w.gv.matched[w.gv.source(w.bf.toRightEdge[topChild])] == w.bf.toRightEdge[topChild] {
			goingRight = true
		} else {
			goingRight = false
		}
	}

	step := func(node int) int {
		if goingRight {
			return w.bf.right[node]
		}
		return w.bf.left[node]
	}
	edgeTo := func(node int) int {
		if goingRight {
			return w.bf.toRightEdge[node]
		}
		return w.bf.toLeftEdge[node]
	}

	parityOdd := true // topChild inherits Odd first (it was adjacent to even parent's tree edge)
	cur = topChild
	w.bf.root[cur] = oldRoot
	w.bf.treeParentEdge[cur] = oldTPE
	for cur != base {
		if parityOdd {
			w.bf.isEven[cur] = false
			w.bf.delta1[cur] = w.delta
			verts := w.bf.verticesSlice(cur)
			b0, e0 := w.sf.allocateGroup(verts, cur)
			w.bf.find1Begin[cur], w.bf.find1End[cur] = b0, e0
			if !w.isTrivial(cur) {
				w.expandEvents.insertOrDecrease(cur, w.bf.z0[cur]/2+w.bf.delta1[cur])
			}
		} else {
			w.makeEven(cur)
		}
		nxt := step(cur)
		e := edgeTo(cur)
		w.bf.root[nxt] = oldRoot
		w.bf.treeParentEdge[nxt] = w.gv.twin[e]
		cur = nxt
		parityOdd = !parityOdd
	}
	w.bf.root[B] = -1

	// base always finishes Odd: the entry point is Odd and the chain from
	// entry to base walks an even number of ring-edges (that is how the
	// direction in goingRight was chosen), so parity returns to Odd. The
	// loop above stops one step short of base, so its Odd bookkeeping -
	// skipped by the loop's cur != base condition - is finished here.
	w.bf.isEven[base] = false
	w.bf.delta1[base] = w.delta
	baseVerts := w.bf.verticesSlice(base)
	bb0, be0 := w.sf.allocateGroup(baseVerts, base)
	w.bf.find1Begin[base], w.bf.find1End[base] = bb0, be0
	if !w.isTrivial(base) {
		w.expandEvents.insertOrDecrease(base, w.bf.z0[base]/2+w.bf.delta1[base])
	}

	cur = step(base)
	for cur != topChild {
		w.bf.root[cur] = -1
		w.bf.treeParentEdge[cur] = -1
		verts := w.bf.verticesSlice(cur)
		b0, e0 := w.sf.allocateGroup(verts, cur)
		w.bf.find1Begin[cur], w.bf.find1End[cur] = b0, e0
		w.bf.deltaOdd[cur] = w.bf.deltaOdd[B]
		if key, mv := w.sf.findMin(w.bf.base[cur]); mv != -1 {
			w.growEvents.insertOrDecrease(cur, w.bf.deltaOdd[cur]+key.slackBar)
		}
		cur = step(cur)
	}

	for _, ch := range w.bf.verticesOfDirectChildren(B) {
		w.bf.toLeftEdge[ch] = -1
		w.bf.toRightEdge[ch] = -1
		w.bf.left[ch] = -1
		w.bf.right[ch] = -1
	}
}

// --- 4.7.G MakeEven -------------------------------------------------------

func (w *worker) makeEven(V int) {
	verts := w.bf.verticesSlice(V)
	w.bf.isEven[V] = true
	w.bf.delta0[V] = w.delta
	anchor := w.topSMFNode(V)
	for _, v := range verts {
		w.bf.isEven[v] = true
		w.uf.makeSingleton(v, V)
	}
	for i := 1; i < len(verts); i++ {
		w.uf.union(verts[0], verts[i])
	}
	if len(verts) > 0 {
		w.uf.setPayload(verts[0], V)
	}
	for _, v := range verts {
		if w.vToSMFId[v] == -1 {
			if anchor == -1 {
				anchor = w.sm.initTree()
			}
			w.vToSMFId[v] = w.sm.addLeaf(anchor)
		} else if anchor != -1 {
			w.sm.mergeSubTrees(w.vToSMFId[v], anchor)
		}
	}
	for _, v := range verts {
		w.insertGrowEventsFromVertex(v)
		w.insertBlossomEventsFromVertex(v)
	}
}

// --- Search end -----------------------------------------------------------

func (w *worker) searchEnd() {
	for v := range w.y0 {
		w.y0[v] = w.yVal(v)
	}
	for b := range w.bf.parent {
		if !w.isTrivial(b) {
			w.bf.z0[b] = w.bf.dualVal(b, w.delta)
		}
		w.bf.delta0[b] = 0
		w.bf.delta1[b] = 0
		w.bf.deltaOdd[b] = 0
	}
	w.delta = 0
}
