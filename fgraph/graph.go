package fgraph

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/msfrag/fragid/formula"
)

// RootID is the fixed identifier of the pseudo-root node every Graph carries.
const RootID = "root"

// Node is one (peak, sub-formula) pair, or the pseudo-root. PeakIndex is the
// node's color: -1 for the root, otherwise the index of the originating peak
// in the processed input's peak list. A colorful subtree uses each color at
// most once.
type Node struct {
	ID        string
	PeakIndex int
	Formula   formula.MolecularFormula
	MZ        float64
	Intensity float64
}

// Edge is a directed neutral-loss edge from a larger fragment to a smaller
// one. Weight is the combined log-odds score assigned by the builder's
// scorers: the edge's own loss plausibility plus the destination node's
// fragment-peak and tree-size contributions, folded in once per incoming
// edge.
type Edge struct {
	ID     string
	From   string
	To     string
	Weight float64
}

// Graph is the fragmentation DAG. Node state and edge/adjacency state are
// guarded by separate locks so read-only traversal never blocks concurrent
// node lookups, mirroring core.Graph's muVert/muEdgeAdj split.
type Graph struct {
	muVert sync.RWMutex
	nodes  map[string]*Node

	muEdgeAdj     sync.RWMutex
	edges         map[string]*Edge
	adjacencyList map[string]map[string]string // from -> to -> edgeID
	adjacencyIn   map[string]map[string]string // to -> from -> edgeID
	nextEdgeID    uint64
}

// NewGraph returns an empty fragmentation DAG.
func NewGraph() *Graph {
	return &Graph{
		nodes:         make(map[string]*Node),
		edges:         make(map[string]*Edge),
		adjacencyList: make(map[string]map[string]string),
		adjacencyIn:   make(map[string]map[string]string),
	}
}

// ErrDuplicateNode is returned by AddNode when ID is already present.
var ErrDuplicateNode = fmt.Errorf("fgraph: duplicate node ID")

// ErrUnknownNode is returned by AddEdge when an endpoint is not present.
var ErrUnknownNode = fmt.Errorf("fgraph: unknown node ID")

// AddNode registers n. It is an error to add the same ID twice.
func (g *Graph) AddNode(n Node) error {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNode
	}
	cp := n
	g.nodes[n.ID] = &cp

	return nil
}

// AddEdge adds a directed edge from -> to with the given weight, returning
// its generated ID. Both endpoints must already exist.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	g.muVert.RLock()
	_, fromOK := g.nodes[from]
	_, toOK := g.nodes[to]
	g.muVert.RUnlock()
	if !fromOK || !toOK {
		return "", ErrUnknownNode
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	id := fmt.Sprintf("e%d", atomic.AddUint64(&g.nextEdgeID, 1)-1)
	g.edges[id] = &Edge{ID: id, From: from, To: to, Weight: weight}
	if g.adjacencyList[from] == nil {
		g.adjacencyList[from] = make(map[string]string)
	}
	g.adjacencyList[from][to] = id
	if g.adjacencyIn[to] == nil {
		g.adjacencyIn[to] = make(map[string]string)
	}
	g.adjacencyIn[to][from] = id

	return id, nil
}

// Node returns the node with the given ID and whether it was found.
func (g *Graph) Node(id string) (Node, bool) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}

	return *n, true
}

// Nodes returns every node, sorted by ID for deterministic iteration.
func (g *Graph) Nodes() []Node {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// NodeCount reports the number of nodes in the graph, including the root.
func (g *Graph) NodeCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.nodes)
}

// EdgeCount reports the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// OutEdges returns every edge leaving id, sorted by destination ID.
func (g *Graph) OutEdges(id string) []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	targets := g.adjacencyList[id]
	out := make([]Edge, 0, len(targets))
	for _, eid := range targets {
		out = append(out, *g.edges[eid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out
}

// InEdges returns every edge entering id, sorted by source ID.
func (g *Graph) InEdges(id string) []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	sources := g.adjacencyIn[id]
	out := make([]Edge, 0, len(sources))
	for _, eid := range sources {
		out = append(out, *g.edges[eid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })

	return out
}

// AdjustEdgeWeights adds delta to every edge's weight. Used to retune a
// cached graph's TreeSizeScorer contribution across adaptive-loop
// iterations without rebuilding topology: since every edge already carries
// exactly one TreeSizeScorer.ScoreNode() bonus (folded in once per
// incoming edge by ScorerSet.combine), bumping the bonus by delta is
// equivalent to adding delta to every edge weight.
func (g *Graph) AdjustEdgeWeights(delta float64) {
	if delta == 0 {
		return
	}
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	for _, e := range g.edges {
		e.Weight += delta
	}
}

// Edge returns the edge with the given ID and whether it was found.
func (g *Graph) Edge(id string) (Edge, bool) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return Edge{}, false
	}

	return *e, true
}
