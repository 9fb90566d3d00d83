// File: matching.go
// Role: top-level façade. MaxWeightMatching builds the graph view (C1),
// drives the outer loop of searches (C7, via worker), and translates the
// resulting half-edge matching array back into original core.Graph edge
// ids (spec.md 6, "external interfaces").
//
// Grounded on the teacher's top-level algorithm entry points (e.g.
// dijkstra.Dijkstra(g, source, opts...), flow's max-flow entry points) which
// all follow the same shape: validate input, build a private run-state,
// drive it to completion, translate back to caller-facing ids.
package matching

import "github.com/vlath-dev/lvlath/core"

// MaxWeightMatching computes a maximum-weight matching on g, a weighted
// undirected graph with no directed edges. If opts includes WithPerfect,
// the result is constrained to a perfect matching and ErrNoPerfectMatching
// is returned if none exists.
func MaxWeightMatching(g *core.Graph, opts ...Option) (Matching, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	gv, err := buildGraphView(g)
	if err != nil {
		return Matching{}, err
	}
	if o.NonNegativeWeights {
		for _, wt := range gv.weight {
			if wt < 0 {
				return Matching{}, ErrNegativeWeight
			}
		}
	}

	w := newWorker(gv, o)
	search := 0
	for {
		w.searchBegin()
		if o.Trace != nil {
			o.Trace(TraceEvent{Search: search, Delta: 0, Step: "search-begin"})
		}
		augmented := w.runInnerLoop()
		if o.Trace != nil {
			o.Trace(TraceEvent{Search: search, Delta: w.delta, Step: "search-end"})
		}
		// searchEnd commits this phase's dual progress into y0/z0 even
		// when it did not augment, so DualValues reflects the delta this
		// phase reached (e.g. the delta1 bound) rather than stopping one
		// phase short.
		w.searchEnd()
		if !augmented {
			break
		}
		search++
	}

	if o.Perfect {
		for v := 0; v < gv.n; v++ {
			if gv.matched[v] == -1 {
				return Matching{}, ErrNoPerfectMatching
			}
		}
	}

	return buildResult(gv), nil
}

// buildResult translates the half-edge matching array into the caller's
// core.Graph edge ids, emitting exactly one edge per matched pair.
func buildResult(gv *graphView) Matching {
	var ids []string
	covered := make(map[string]bool)
	weight := 0.0
	for u := 0; u < gv.n; u++ {
		e := gv.matched[u]
		if e == -1 {
			continue
		}
		v := gv.target(e)
		if u >= v {
			continue
		}
		ids = append(ids, gv.origEdgeID[gv.origID[e]])
		weight += gv.weight[e]
		covered[gv.vertexID[u]] = true
		covered[gv.vertexID[v]] = true
	}
	return Matching{edgeIDs: ids, weight: weight, covered: covered}
}
