package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/fgraph"
	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/pipeline"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
	"github.com/msfrag/fragid/subtree"
)

func sampleResult() pipeline.IdentificationResult {
	ionType := ioniz.FromIonization(ioniz.Protonation())
	return pipeline.IdentificationResult{
		Rank:    1,
		Formula: formula.Of("C", 1, "H", 4),
		IonType: ionType,
		Tree: subtree.FTree{
			Root: fgraph.RootID,
			Nodes: []fgraph.Node{
				{ID: fgraph.RootID, PeakIndex: -1},
				{ID: "p0#CH4", PeakIndex: 0, Formula: formula.Of("C", 1, "H", 4), MZ: 17.03, Intensity: 1.0},
			},
			Edges: []fgraph.Edge{
				{ID: "e0", From: fgraph.RootID, To: "p0#CH4", Weight: 2.5},
			},
			Weight: 2.5,
		},
		Score:                   2.5,
		ExplainedIntensityRatio: 1.0,
		NumberOfVertices:        1,
		Optimal:                 true,
	}
}

func TestWriter_WriteRunProducesExpectedFiles(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	err = w.WriteRun("exp1", []pipeline.IdentificationResult{sampleResult()})
	require.NoError(t, err)

	l := NewLayout(root)
	assert.FileExists(t, l.TreeJSONPath("exp1", 1, "CH4"))
	assert.FileExists(t, l.TreeDotPath("exp1", 1, "CH4"))
	assert.FileExists(t, l.SummaryPath("exp1"))
	assert.FileExists(t, l.ScoresPath("exp1"))

	dot, err := os.ReadFile(l.TreeDotPath("exp1", 1, "CH4"))
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph")
	assert.Contains(t, string(dot), "root")
}

func TestWriter_WriteRunEmptyResultsIsError(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	err = w.WriteRun("exp1", nil)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestWriter_WriteExperimentWritesMSFile(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	exp := spectrum.Ms2Experiment{ID: "exp1", IonMass: 17.03}
	require.NoError(t, w.WriteExperiment(exp))

	l := NewLayout(root)
	assert.FileExists(t, l.ExperimentPath("exp1"))
}

func TestWriter_WriteProfileWritesYAML(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	require.NoError(t, w.WriteProfile("qtof", profile.Default()))

	path := filepath.Join(root, "profiles", "qtof", "profile.yaml")
	assert.FileExists(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "isotopePatternHandling")
}
