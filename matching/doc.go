// Package matching computes maximum weight matchings on general (not
// necessarily bipartite) weighted undirected graphs.
//
// It implements the Galil-Micali-Gabow variant of Edmonds' blossom
// algorithm, organised around Gabow's (1990) split-find-min and
// subtree-merge-find-min structures. Those structures rescan their slot
// ranges and edge lists on every query, so the O(mn + n^2 log n) bound of
// Gabow's amortized versions is not reached.
//
// The algorithm is a primal-dual search. Each search grows an alternating
// tree from every unmatched (or, for Out blossoms, matched) vertex,
// contracting odd cycles into "blossoms" as it goes, and advances a
// single scalar delta that drives four kinds of events (grow, blossom,
// augment, expand) until either an augmenting path is found or no further
// dual adjustment can improve the matching. Between searches dual values
// are frozen into y0/z0 and delta is reset to zero.
//
// The package operates on *core.Graph (see the core package): the input
// must be undirected and weighted; self-loops are ignored; parallel
// edges are supported.
//
//	m, err := matching.MaxWeightMatching(g)
//	if err != nil { ... }
//	fmt.Println(m.Weight(), m.EdgeIDs())
//
// Use matching.WithPerfect() to require a perfect matching (an error is
// returned if none exists).
package matching
