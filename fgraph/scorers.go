package fgraph

import "github.com/msfrag/fragid/formula"

// LossScorer scores the chemical plausibility of losing child from parent
// (parent and child are both sub-formulas of the precursor; child is a
// strict subset of parent).
type LossScorer interface {
	ScoreLoss(parent, child formula.MolecularFormula) float64
}

// FragmentPeakScorer folds a node's own peak evidence (its mass-deviation
// decomposition score, already computed by the preprocessor) into an edge
// weight contribution.
type FragmentPeakScorer interface {
	ScoreFragment(decompositionScore float64) float64
}

// TreeSizeScorer contributes a constant per-node bonus, used to bias the
// solver toward larger explained trees. Unlike the mutable, globally shared
// scorer it replaces, instances are plain immutable values threaded through
// ScorerSet — there is no shared state to restore between runs.
type TreeSizeScorer interface {
	ScoreNode() float64
}

// IdentityFragmentScorer passes the decomposition score through unchanged.
type IdentityFragmentScorer struct{}

// ScoreFragment implements FragmentPeakScorer.
func (IdentityFragmentScorer) ScoreFragment(decompositionScore float64) float64 {
	return decompositionScore
}

// ConstantTreeSizeScorer returns a fixed bonus for every node, independent
// of tree shape.
type ConstantTreeSizeScorer struct {
	Bonus float64
}

// ScoreNode implements TreeSizeScorer.
func (s ConstantTreeSizeScorer) ScoreNode() float64 {
	return s.Bonus
}

// commonLosses maps well-known neutral-loss formulas to a log-odds bonus,
// reflecting how often each is observed in curated fragmentation libraries.
// Values are illustrative log-odds, not measured frequencies.
var commonLosses = map[string]float64{
	"H2O":  2.0,
	"NH3":  1.6,
	"CO":   1.4,
	"CO2":  1.8,
	"CH2O": 1.0,
	"C2H4": 0.6,
	"H2":   0.4,
	"HCl":  1.2,
	"CH3":  0.5,
}

// RDBELossScorer scores a loss by the chemical sanity of its own degree of
// unsaturation: a loss whose DBE is a non-negative half-integer gets no
// penalty; implausible (strongly negative) DBE is penalized, and losses
// matching a well-known neutral loss receive commonLosses' bonus on top.
type RDBELossScorer struct {
	ImplausibleDBEPenalty float64
}

// NewRDBELossScorer returns an RDBELossScorer with a conventional penalty.
func NewRDBELossScorer() RDBELossScorer {
	return RDBELossScorer{ImplausibleDBEPenalty: -3.0}
}

// ScoreLoss implements LossScorer.
func (s RDBELossScorer) ScoreLoss(parent, child formula.MolecularFormula) float64 {
	loss, ok := parent.Subtract(child)
	if !ok {
		return s.ImplausibleDBEPenalty
	}

	score := 0.0
	if bonus, ok := commonLosses[loss.String()]; ok {
		score += bonus
	}
	if loss.DBE() < -0.5 {
		score += s.ImplausibleDBEPenalty
	}

	return score
}

// ScorerSet bundles the three pluggable scoring strategies used when
// building a Graph. Each field is a plain interface value: swapping a
// strategy out means constructing a new ScorerSet, not mutating shared
// state mid-search.
type ScorerSet struct {
	Loss      LossScorer
	Fragment  FragmentPeakScorer
	TreeSize  TreeSizeScorer
}

// DefaultScorerSet returns the builder's default strategy combination.
func DefaultScorerSet(treeSizeBonus float64) ScorerSet {
	return ScorerSet{
		Loss:     NewRDBELossScorer(),
		Fragment: IdentityFragmentScorer{},
		TreeSize: ConstantTreeSizeScorer{Bonus: treeSizeBonus},
	}
}

// combine folds every scorer's contribution into one edge weight: the
// loss's own plausibility, the destination node's decomposition evidence,
// and the constant tree-size bonus.
func (s ScorerSet) combine(parent, child formula.MolecularFormula, childDecompositionScore float64) float64 {
	return s.Loss.ScoreLoss(parent, child) +
		s.Fragment.ScoreFragment(childDecompositionScore) +
		s.TreeSize.ScoreNode()
}
