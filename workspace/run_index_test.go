package workspace

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/pipeline"
)

func TestRunIndex_RecordAndLookupRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	idx, err := OpenRunIndex(dbPath)
	require.NoError(t, err)
	defer idx.Close()

	started := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	finished := started.Add(2 * time.Second)
	results := []pipeline.IdentificationResult{{Formula: formula.Of("C", 1, "H", 4), Score: 2.5}}

	id, err := idx.RecordRun("exp1", started, finished, results)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	rec, err := idx.Run(id)
	require.NoError(t, err)
	assert.Equal(t, "exp1", rec.ExperimentID)
	assert.Equal(t, "CH4", rec.TopFormula)
	assert.InDelta(t, 2.5, rec.TopScore, 1e-9)
}

func TestRunIndex_RunNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	idx, err := OpenRunIndex(dbPath)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Run("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunIndex_RunsForExperimentOrdersMostRecentFirst(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	idx, err := OpenRunIndex(dbPath)
	require.NoError(t, err)
	defer idx.Close()

	base := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	_, err = idx.RecordRun("exp1", base, base.Add(time.Second), nil)
	require.NoError(t, err)
	_, err = idx.RecordRun("exp1", base.Add(time.Hour), base.Add(time.Hour+time.Second), nil)
	require.NoError(t, err)

	runs, err := idx.RunsForExperiment("exp1")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}
