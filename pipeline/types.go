package pipeline

import (
	"go.uber.org/zap"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/subtree"
)

// IdentificationResult is one ranked candidate explanation for an
// experiment: a precursor formula, the ion type it was searched under,
// its best fragmentation tree, and the score that ranked it.
type IdentificationResult struct {
	Rank                    int
	Formula                 formula.MolecularFormula
	IonType                 ioniz.PrecursorIonType
	Tree                    subtree.FTree
	Score                   float64
	IsotopeScore            float64
	ExplainedIntensityRatio float64
	NumberOfVertices        int
	Optimal                 bool
	Recalibrated            bool
}

// Options configures one Identify call.
type Options struct {
	// K is the maximum number of candidates to return.
	K int

	// Recalibrating, if true, runs a second tree-computation pass after
	// mass recalibration for each retained candidate.
	Recalibrating bool

	// WhiteList, if non-empty, restricts candidate neutral formulas to
	// this set (intersected with whatever isotope/parent-peak filtering
	// produces).
	WhiteList []formula.MolecularFormula

	// Logger receives structured progress events for this call: adaptive
	// tree-size iterations, stage failures, recalibration outcomes. A nil
	// Logger is replaced with a no-op one (logging.NewNop).
	Logger *zap.SugaredLogger
}

// candidateResult is one per-formula worker's outcome, before ranking.
type candidateResult struct {
	formula  formula.MolecularFormula
	ionType  ioniz.PrecursorIonType
	tree     subtree.FTree
	optimal  bool
	isoScore float64
}

func whiteListContains(list []formula.MolecularFormula, f formula.MolecularFormula) bool {
	if len(list) == 0 {
		return true
	}
	for _, w := range list {
		if w.Equal(f) {
			return true
		}
	}

	return false
}
