// Package fgraph implements the fragmentation DAG: a directed acyclic
// "colored" graph whose nodes are (peak, sub-formula) pairs (plus one
// pseudo-root) and whose edges are chemically plausible neutral losses.
//
// Graph's locking discipline (separate mutexes for node and edge/adjacency
// state, RLock on every read path) is adapted directly from
// core.Graph — this package's Graph is core.Graph generalized with a
// per-node Color (the originating peak index) and a fixed weight type
// (float64 log-odds) instead of core's generic int64 edge weight, since
// the fragmentation DAG is always directed and always weighted.
package fgraph
