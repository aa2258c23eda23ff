package fgraph

import (
	"fmt"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/preprocess"
)

// mzTolerance is the ε subtracted from a parent's m/z before a candidate
// edge's child m/z must fall under it.
const mzTolerance = 1e-6

// candidateNode is an internal (peak, formula) pairing carried alongside
// its Node for edge construction.
type candidateNode struct {
	node     Node
	score    float64
	isParent bool
}

// above reports whether c sits above other in the observed peak order, for
// the purpose of the child-must-be-lighter edge constraint: the parent
// peak is always treated as the highest peak regardless of its measured
// m/z, so it may reach any other candidate.
func (c candidateNode) above(other candidateNode) bool {
	if c.isParent {
		return true
	}

	return other.node.MZ <= c.node.MZ-mzTolerance
}

// Build constructs the fragmentation DAG for precursor: one pseudo-root
// carrying precursor's formula, one node per (peak, sub-formula) candidate
// surviving pi.ForPrecursor(precursor), an edge from the root to every
// parent-peak candidate whose formula is a subset of precursor, and a
// directed edge A -> B between candidates where B.Formula is a strict
// subset of A.Formula, the two nodes do not share a peak color, and B's
// peak m/z is at least mzTolerance below A's (a parent-peak A is exempt
// from the m/z check). Edge weights are assigned by scorers.
func Build(pi preprocess.ProcessedInput, precursor formula.MolecularFormula, scorers ScorerSet) (*Graph, error) {
	narrowed := pi.ForPrecursor(precursor)

	g := NewGraph()
	if err := g.AddNode(Node{
		ID:        RootID,
		PeakIndex: -1,
		Formula:   precursor,
		MZ:        narrowed.Experiment.IonMass,
		Intensity: 1,
	}); err != nil {
		return nil, err
	}

	var candidates []candidateNode
	for peakIdx, pp := range narrowed.Peaks {
		for _, c := range pp.Decompositions {
			id := fmt.Sprintf("p%d#%s", peakIdx, c.Formula.String())
			n := Node{
				ID:        id,
				PeakIndex: peakIdx,
				Formula:   c.Formula,
				MZ:        pp.Peak.MZ,
				Intensity: pp.Peak.Intensity,
			}
			if err := g.AddNode(n); err != nil {
				return nil, err
			}
			candidates = append(candidates, candidateNode{node: n, score: c.Score, isParent: pp.IsParent})
		}
	}

	// Root -> candidates at the parent peak whose formula is a (non-strict)
	// subset of the precursor: the pseudo-root only anchors the tree at the
	// observed full-ion peak, never at a smaller fragment directly.
	for _, c := range candidates {
		if !c.isParent {
			continue
		}
		if !c.node.Formula.IsSubsetOf(precursor) {
			continue
		}
		weight := scorers.combine(precursor, c.node.Formula, c.score)
		if _, err := g.AddEdge(RootID, c.node.ID, weight); err != nil {
			return nil, err
		}
	}

	// Candidate -> candidate: strict-subset formula pairs, distinct peak
	// colors, and the child's peak at or below the parent's in m/z (the
	// parent peak is always treated as above every other peak).
	for _, parent := range candidates {
		for _, child := range candidates {
			if parent.node.ID == child.node.ID {
				continue
			}
			if parent.node.PeakIndex == child.node.PeakIndex {
				continue
			}
			if child.node.Formula.Equal(parent.node.Formula) || !child.node.Formula.IsSubsetOf(parent.node.Formula) {
				continue
			}
			if !parent.above(child) {
				continue
			}
			weight := scorers.combine(parent.node.Formula, child.node.Formula, child.score)
			if _, err := g.AddEdge(parent.node.ID, child.node.ID, weight); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
