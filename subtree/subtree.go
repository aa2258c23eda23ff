package subtree

import (
	"math"
	"sort"
	"time"

	"github.com/msfrag/fragid/fgraph"
)

// FTree is one candidate fragmentation tree: the subset of nodes reachable
// from the root via chosen edges, using each color at most once.
type FTree struct {
	Root   string
	Nodes  []fgraph.Node
	Edges  []fgraph.Edge
	Weight float64
}

// SearchOptions configures a colorful-subtree search.
type SearchOptions struct {
	// TimeLimit, if positive, bounds wall-clock search time. Zero disables
	// the deadline.
	TimeLimit time.Duration

	// Eps is the pruning tolerance: a branch is cut when its bound cannot
	// exceed the current incumbent by more than Eps.
	Eps float64
}

// DefaultSearchOptions returns conservative defaults: no time limit, a
// small epsilon tolerant of floating point noise.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Eps: 1e-9}
}

// OptimalTree returns the single highest-weight colorful subtree of g.
func OptimalTree(g *fgraph.Graph, opts SearchOptions) (FTree, error) {
	trees, err := KBest(g, 1, opts, nil)
	if err != nil {
		return FTree{}, err
	}
	if len(trees) == 0 {
		return FTree{Root: fgraph.RootID}, nil
	}

	return trees[0], nil
}

// KBest returns up to k distinct colorful subtrees of g, sorted descending
// by weight. progress, if non-nil, is invoked every time a new tree enters
// the top-k incumbent set, with the number of trees held so far.
func KBest(g *fgraph.Graph, k int, opts SearchOptions, progress func(found int)) ([]FTree, error) {
	if k < 1 {
		k = 1
	}
	if _, ok := g.Node(fgraph.RootID); !ok {
		return nil, ErrEmptyGraph
	}

	order, err := topologicalOrder(g)
	if err != nil {
		return nil, err
	}

	e := &colorfulEngine{
		graph:    g,
		order:    order,
		k:        k,
		eps:      opts.Eps,
		progress: progress,
		included:      make(map[string]bool, len(order)),
		chosen:        make(map[string]fgraph.Edge, len(order)),
		includedColor: make(map[int]bool, len(order)),
	}
	if e.eps < 0 {
		e.eps = 0
	}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}
	e.prepare()

	e.search(0, 0)

	if e.useDeadline && time.Now().After(e.deadline) && len(e.top) == 0 {
		return nil, ErrTimeLimit
	}

	out := make([]FTree, len(e.top))
	for i, t := range e.top {
		if err := verifyScore(t); err != nil {
			return nil, err
		}
		out[i] = t
	}

	return out, nil
}

// verifyScore recomputes a tree's weight by summing its edges and compares
// it against the incrementally tracked Weight.
func verifyScore(t FTree) error {
	var sum float64
	for _, e := range t.Edges {
		sum += e.Weight
	}
	if math.Abs(sum-t.Weight) >= 1e-9 {
		return ErrScoreMismatch
	}

	return nil
}

// colorfulEngine holds all search state for one KBest invocation.
type colorfulEngine struct {
	graph *fgraph.Graph
	order []string
	k     int
	eps   float64

	useDeadline bool
	deadline    time.Time
	steps       int

	inEdges     map[string][]fgraph.Edge
	suffixBound []float64 // suffixBound[i] = loose upper bound on weight obtainable from order[i:]

	included      map[string]bool
	chosen        map[string]fgraph.Edge
	includedColor map[int]bool

	top      []FTree
	progress func(int)
}

// prepare precomputes in-edges and the suffix bound used to prune.
func (e *colorfulEngine) prepare() {
	e.inEdges = make(map[string][]fgraph.Edge, len(e.order))
	bestPerNode := make([]float64, len(e.order))
	for i, id := range e.order {
		ins := e.graph.InEdges(id)
		e.inEdges[id] = ins
		best := 0.0
		for _, in := range ins {
			if in.Weight > best {
				best = in.Weight
			}
		}
		bestPerNode[i] = best
	}

	e.suffixBound = make([]float64, len(e.order)+1)
	for i := len(e.order) - 1; i >= 0; i-- {
		e.suffixBound[i] = e.suffixBound[i+1] + bestPerNode[i]
	}
}

// worstTop returns the weight of the current k-th best tree, or -Inf if
// fewer than k have been found.
func (e *colorfulEngine) worstTop() float64 {
	if len(e.top) < e.k {
		return math.Inf(-1)
	}

	return e.top[len(e.top)-1].Weight
}

// deadlineCheck performs a sparse wall-clock check, mirroring tsp.bbEngine.
func (e *colorfulEngine) deadlineCheck() bool {
	e.steps++
	if !e.useDeadline || (e.steps&1023) != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

// search explores node order[idx:] by deciding, for each node, whether to
// include it via its best currently-available parent edge or skip it.
func (e *colorfulEngine) search(idx int, weight float64) {
	if e.deadlineCheck() {
		return
	}
	if bound := weight + e.suffixBound[idx]; bound <= e.worstTop()-e.eps {
		return
	}

	if idx == len(e.order) {
		e.commit(weight)

		return
	}

	id := e.order[idx]
	if id == fgraph.RootID {
		e.included[id] = true
		e.search(idx+1, weight)
		delete(e.included, id)

		return
	}

	node, _ := e.graph.Node(id)

	// Branch A: skip this node entirely.
	e.search(idx+1, weight)

	// Branch B: include it via the highest-weight edge from an already
	// included ancestor, if its color is not already used by another
	// included node.
	if e.includedColor[node.PeakIndex] {
		return
	}
	var best *fgraph.Edge
	for _, in := range e.inEdges[id] {
		if !e.included[in.From] {
			continue
		}
		if best == nil || in.Weight > best.Weight {
			cp := in
			best = &cp
		}
	}
	if best == nil {
		return
	}

	e.included[id] = true
	e.includedColor[node.PeakIndex] = true
	e.chosen[id] = *best
	e.search(idx+1, weight+best.Weight)
	delete(e.chosen, id)
	delete(e.includedColor, node.PeakIndex)
	delete(e.included, id)
}

// commit builds a candidate FTree from the current included/chosen state
// and inserts it into the top-k incumbent list if it qualifies.
func (e *colorfulEngine) commit(weight float64) {
	if len(e.top) >= e.k && weight <= e.worstTop()+e.eps {
		return
	}

	var nodes []fgraph.Node
	var edges []fgraph.Edge
	for id := range e.included {
		n, _ := e.graph.Node(id)
		nodes = append(nodes, n)
		if ed, ok := e.chosen[id]; ok {
			edges = append(edges, ed)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	tree := FTree{Root: fgraph.RootID, Nodes: nodes, Edges: edges, Weight: weight}

	i := sort.Search(len(e.top), func(i int) bool { return e.top[i].Weight < weight })
	e.top = append(e.top, FTree{})
	copy(e.top[i+1:], e.top[i:])
	e.top[i] = tree
	if len(e.top) > e.k {
		e.top = e.top[:e.k]
	}
	if e.progress != nil {
		e.progress(len(e.top))
	}
}
