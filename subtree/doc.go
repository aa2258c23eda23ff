// Package subtree solves the maximum colorful subtree problem over a
// fragmentation DAG: find the subset of nodes reachable from the root by a
// tree of edges, using each color (peak) at most once, maximizing total
// edge weight.
//
// The search engine's shape — a dedicated struct carrying graph data,
// precomputed bounds, and incumbent state, driven by a DFS method with
// admissible-bound pruning and a soft time budget — is adapted from
// tsp.bbEngine. Two differences from the TSP engine: branching here is
// binary (include a node via its best available parent edge, or skip it)
// rather than a full neighbor fan-out, because attachment point never
// affects any later decision — only whether a node ends up included, and
// at what weight; and the search maximizes rather than minimizes, so
// pruning compares against the worst of the current top-K incumbents
// instead of a single upper bound.
package subtree
