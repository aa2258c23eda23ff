package subtree

import (
	"errors"
	"sort"

	"github.com/msfrag/fragid/fgraph"
)

// ErrCycleDetected is returned by topologicalOrder if the fragmentation
// graph is not acyclic. Build never constructs cycles, so this indicates a
// malformed Graph supplied directly to the solver.
var ErrCycleDetected = errors.New("subtree: cycle detected in fragmentation graph")

// topologicalOrder returns every node ID in g in topological order (every
// node after all of its possible parents), via Kahn's algorithm over
// in-degree counts. Ties are broken lexicographically for deterministic
// search behavior, so the root comes first only when every other node has
// an in-edge: a node without in-edges whose ID sorts before the root's
// precedes it.
func topologicalOrder(g *fgraph.Graph) ([]string, error) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = len(g.InEdges(n.ID))
	}

	var ready []string
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			ready = append(ready, n.ID)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var freed []string
		for _, e := range g.OutEdges(id) {
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				freed = append(freed, e.To)
			}
		}
		sort.Strings(freed)
		ready = append(ready, freed...)
		sort.Strings(ready)
	}

	if len(order) != len(nodes) {
		return nil, ErrCycleDetected
	}

	return order, nil
}
