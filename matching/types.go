// Package matching: sentinel errors and caller-facing configuration.
//
// Errors:
//
//	ErrNilGraph          - graph argument is nil.
//	ErrDirectedInput     - graph has directed edges; matching requires undirected input.
//	ErrUnweightedGraph   - graph was not constructed with core.WithWeighted().
//	ErrNoPerfectMatching - WithPerfect() requested but no perfect matching exists.
//	ErrNumericInfeasible - delta decreased across a search step by more than Epsilon; library bug.
//	ErrStaleHandle       - a heap handle was used after its blossom left the search (declared, never raised).
//	ErrNegativeWeight    - WithNonNegativeWeights() requested but the graph carries a negative edge weight.
package matching

import "errors"

// Sentinel errors returned by MaxWeightMatching.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to MaxWeightMatching.
	ErrNilGraph = errors.New("matching: graph is nil")

	// ErrDirectedInput indicates the graph carries directed edges; the matching
	// engine operates on undirected graphs only.
	ErrDirectedInput = errors.New("matching: graph must be undirected")

	// ErrUnweightedGraph indicates the graph was not constructed with core.WithWeighted().
	ErrUnweightedGraph = errors.New("matching: graph must be weighted")

	// ErrNoPerfectMatching indicates that WithPerfect() was requested but the
	// graph admits no perfect matching.
	ErrNoPerfectMatching = errors.New("matching: no perfect matching exists")

	// ErrNumericInfeasible indicates that delta attempted to decrease by more
	// than Epsilon between two steps of the inner loop. This is a library bug,
	// not a caller error: the sentinel itself is raised via panic.
	ErrNumericInfeasible = errors.New("matching: numeric infeasibility detected")

	// ErrStaleHandle indicates an event-heap handle was used after its owning
	// blossom was dissolved or its search ended. No code path in this package
	// returns or raises it.
	ErrStaleHandle = errors.New("matching: stale heap handle")

	// ErrNegativeWeight indicates WithNonNegativeWeights() was requested but
	// the graph carries at least one negative edge weight.
	ErrNegativeWeight = errors.New("matching: graph has a negative edge weight")
)

// defaultEpsilon is the tolerance used for all delta comparisons and
// zero-checks, per spec.
const defaultEpsilon = 1e-5

// TraceEvent is passed to an optional Options.Trace hook so a caller can
// observe the search's progress without the algorithm depending on any
// logging library. Zero-cost when Trace is nil.
type TraceEvent struct {
	Search int     // search number (0-based)
	Delta  float64 // cumulative delta at the time of this step
	Step   string  // "search-begin" or "search-end"
}

// Options configures MaxWeightMatching.
type Options struct {
	// Perfect requires the result to be a perfect matching; MaxWeightMatching
	// returns ErrNoPerfectMatching if none exists.
	Perfect bool

	// Epsilon is the numeric tolerance for delta comparisons and feasibility
	// checks. Must be positive. Default: 1e-5.
	Epsilon float64

	// Trace, if non-nil, is invoked at the start and at the end of each search;
	// individual grow, blossom, augment and expand steps are not reported.
	Trace func(TraceEvent)

	// NonNegativeWeights, if set, rejects the input with ErrNegativeWeight
	// when any edge has a negative weight, instead of matching the general
	// (possibly-negative) weighted case. See WithNonNegativeWeights.
	NonNegativeWeights bool
}

// Option configures Options via the functional-option pattern used
// throughout lvlath (see dijkstra.Option).
type Option func(*Options)

// WithPerfect requires MaxWeightMatching to return a perfect matching.
func WithPerfect() Option {
	return func(o *Options) { o.Perfect = true }
}

// WithEpsilon overrides the default numeric tolerance (1e-5). Values <= 0
// are ignored (the default is kept).
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps > 0 {
			o.Epsilon = eps
		}
	}
}

// WithTrace installs a hook invoked at the start and at the end of each search.
func WithTrace(fn func(TraceEvent)) Option {
	return func(o *Options) { o.Trace = fn }
}

// WithNonNegativeWeights opts into validating that every edge weight is
// >= 0, returning ErrNegativeWeight otherwise. The engine itself handles
// negative weights correctly (the delta1 bound keeps a negative-weight
// edge from ever being forced into a non-perfect matching), so this is a
// caller-side sanity check for callers whose domain never expects negative
// weights, not a requirement of the algorithm.
func WithNonNegativeWeights() Option {
	return func(o *Options) { o.NonNegativeWeights = true }
}

// DefaultOptions returns the default configuration: non-perfect, Epsilon=1e-5, no trace.
func DefaultOptions() Options {
	return Options{
		Perfect: false,
		Epsilon: defaultEpsilon,
	}
}

// Matching is the result of MaxWeightMatching: an antichain of original
// core.Graph edge IDs, no two of which share an endpoint.
type Matching struct {
	edgeIDs []string
	weight  float64
	covered map[string]bool
}

// EdgeIDs returns the original core.Graph edge IDs forming the matching,
// one id per matched vertex pair. The returned slice is a copy; callers
// may mutate it freely.
func (m Matching) EdgeIDs() []string {
	out := make([]string, len(m.edgeIDs))
	copy(out, m.edgeIDs)
	return out
}

// Weight returns the total weight of the matching (sum of matched edge weights).
func (m Matching) Weight() float64 { return m.weight }

// Size returns the number of matched edges (|M|).
func (m Matching) Size() int { return len(m.edgeIDs) }

// Covers reports whether vertexID is an endpoint of some edge in the matching.
func (m Matching) Covers(vertexID string) bool { return m.covered[vertexID] }
