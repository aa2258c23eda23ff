package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/fgraph"
	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
	"github.com/msfrag/fragid/subtree"
)

func spectrumExperimentStub() spectrum.Ms2Experiment {
	return spectrum.Ms2Experiment{ID: "stub", IonMass: 17.0}
}

func TestWhiteListContains_EmptyListAllowsEverything(t *testing.T) {
	assert.True(t, whiteListContains(nil, formula.Of("C", 1)))
}

func TestWhiteListContains_MatchesByFormulaEquality(t *testing.T) {
	list := []formula.MolecularFormula{formula.Of("C", 6, "H", 12, "O", 6)}
	assert.True(t, whiteListContains(list, formula.Of("C", 6, "H", 12, "O", 6)))
	assert.False(t, whiteListContains(list, formula.Of("C", 6, "H", 12, "O", 5)))
}

func TestRankCandidates_SortsDescendingByScoreThenFormula(t *testing.T) {
	results := []candidateResult{
		{formula: formula.Of("C", 2, "H", 6), tree: subtree.FTree{Weight: 3.0}},
		{formula: formula.Of("C", 1, "H", 4), tree: subtree.FTree{Weight: 5.0}},
		{formula: formula.Of("N", 2), tree: subtree.FTree{Weight: 5.0}},
	}

	ranked := rankCandidates(results, nil, profile.IsotopeOmit, 1.0)
	require.Len(t, ranked, 3)
	assert.InDelta(t, 5.0, ranked[0].score, 1e-9)
	assert.InDelta(t, 5.0, ranked[1].score, 1e-9)
	// Tie broken by canonical formula string ascending: CH4 sorts before N2.
	assert.Equal(t, "CH4", ranked[0].formula.String())
	assert.Equal(t, "N2", ranked[1].formula.String())
	assert.Equal(t, "C2H6", ranked[2].formula.String())
}

func TestRankCandidates_AddsIsotopeScoreInScoreMode(t *testing.T) {
	results := []candidateResult{
		{formula: formula.Of("C", 1, "H", 4), tree: subtree.FTree{Weight: 1.0}},
	}
	isoFormulas := map[string]float64{"CH4": 4.5}

	ranked := rankCandidates(results, isoFormulas, profile.IsotopeScore, 1.0)
	require.Len(t, ranked, 1)
	assert.InDelta(t, 5.5, ranked[0].score, 1e-9)
	assert.InDelta(t, 4.5, ranked[0].isoScore, 1e-9)
}

func TestExplainedIntensityRatio_ExcludesRootNode(t *testing.T) {
	tree := subtree.FTree{
		Nodes: []fgraph.Node{
			{ID: fgraph.RootID, Intensity: 1},
			{ID: "p0#CH4", Intensity: 0.5},
			{ID: "p1#CH3", Intensity: 0.25},
		},
	}
	assert.InDelta(t, 0.75, explainedIntensityRatio(tree, 1.0), 1e-9)
}

func TestExplainedIntensityRatio_ZeroTotalIsZero(t *testing.T) {
	assert.Equal(t, 0.0, explainedIntensityRatio(subtree.FTree{}, 0))
}

func TestFinalize_AssignsRanksAndTruncates(t *testing.T) {
	ranked := []rankedCandidate{
		{candidateResult: candidateResult{formula: formula.Of("C", 1)}, score: 3},
		{candidateResult: candidateResult{formula: formula.Of("C", 2)}, score: 2},
		{candidateResult: candidateResult{formula: formula.Of("C", 3)}, score: 1},
	}

	out := finalize(ranked, 2)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, 2, out[1].Rank)
}

func TestCandidateFormulas_UsesIsotopeFilterWhenConfident(t *testing.T) {
	isoFormulas := map[string]float64{"CH4": 12.0, "C2H6": 11.0}

	candidates, n, err := candidateFormulas(
		spectrumExperimentStub(),
		profile.Default(),
		ioniz.FromIonization(ioniz.Protonation()),
		isoFormulas,
		12.0,
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, candidates, 2)
}

func TestCandidateFormulas_WhiteListIntersection(t *testing.T) {
	isoFormulas := map[string]float64{"CH4": 12.0, "C2H6": 11.0}
	whiteList := []formula.MolecularFormula{formula.Of("C", 1, "H", 4)}

	candidates, n, err := candidateFormulas(
		spectrumExperimentStub(),
		profile.Default(),
		ioniz.FromIonization(ioniz.Protonation()),
		isoFormulas,
		12.0,
		whiteList,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, candidates, 1)
	assert.Equal(t, "CH4", candidates[0].String())
}
