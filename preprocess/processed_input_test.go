package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/preprocess"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
)

func TestProcess_FlagsTheParentPeakAndDecomposesEveryPeak(t *testing.T) {
	glucose := formula.Of("C", 6, "H", 12, "O", 6)
	dehydrated := formula.Of("C", 6, "H", 10, "O", 5) // glucose - H2O
	ionType := ioniz.FromIonization(ioniz.Protonation())

	precursorMZ := ionType.NeutralToIonMass(glucose)
	fragmentMZ := ionType.NeutralToIonMass(dehydrated)

	exp := spectrum.Ms2Experiment{
		ID:      "glucose-exp",
		IonMass: precursorMZ,
		MS2: []spectrum.Spectrum{{Peaks: []spectrum.Peak{
			{MZ: precursorMZ, Intensity: 100},
			{MZ: fragmentMZ, Intensity: 40},
		}}},
	}

	out, err := preprocess.Process(exp, ionType, profile.Default())
	require.NoError(t, err)
	require.Len(t, out.Peaks, 2)

	var parent, other preprocess.ProcessedPeak
	for _, pp := range out.Peaks {
		if pp.IsParent {
			parent = pp
		} else {
			other = pp
		}
	}
	assert.InDelta(t, precursorMZ, parent.Peak.MZ, 1e-6)
	assert.True(t, parent.Decompositions.Contains(glucose), "parent peak's decomposition list must contain the precursor formula")
	assert.True(t, other.Decompositions.Contains(dehydrated), "fragment peak's decomposition list must contain the dehydrated formula")
}

func TestProcess_ConstrainsFragmentDecompositionsToParentReachableSet(t *testing.T) {
	glucose := formula.Of("C", 6, "H", 12, "O", 6)
	ionType := ioniz.FromIonization(ioniz.Protonation())
	precursorMZ := ionType.NeutralToIonMass(glucose)

	// A fragment mass that happens to decompose to a formula NOT reachable
	// as a subset of any parent-peak candidate must be filtered out. S3
	// qualifies: no CHNOPS decomposition of glucose's mass carries more
	// than two sulfurs.
	unreachable := formula.Of("S", 3)
	fragmentMZ := ionType.NeutralToIonMass(unreachable)

	exp := spectrum.Ms2Experiment{
		ID:      "glucose-exp",
		IonMass: precursorMZ,
		MS2: []spectrum.Spectrum{{Peaks: []spectrum.Peak{
			{MZ: precursorMZ, Intensity: 100},
			{MZ: fragmentMZ, Intensity: 10},
		}}},
	}

	out, err := preprocess.Process(exp, ionType, profile.Default())
	require.NoError(t, err)
	for _, pp := range out.Peaks {
		if pp.IsParent {
			continue
		}
		assert.False(t, pp.Decompositions.Contains(unreachable),
			"a fragment formula unreachable from any parent-peak candidate must be filtered out")
	}
}

func TestForPrecursor_KeepsOnlySubsetFormulasAndPreservesIsParent(t *testing.T) {
	precursor := formula.Of("C", 2, "H", 6)
	pi := preprocess.ProcessedInput{
		Peaks: []preprocess.ProcessedPeak{
			{
				Peak:     spectrum.Peak{MZ: 17.0},
				IsParent: true,
				Decompositions: preprocess.DecompositionList{
					{Formula: formula.Of("C", 1, "H", 4)},
					{Formula: formula.Of("N", 2)}, // not a subset of C2H6
				},
			},
		},
	}

	out := pi.ForPrecursor(precursor)
	require.Len(t, out.Peaks, 1)
	assert.True(t, out.Peaks[0].IsParent)
	assert.True(t, out.Peaks[0].Decompositions.Contains(formula.Of("C", 1, "H", 4)))
	assert.False(t, out.Peaks[0].Decompositions.Contains(formula.Of("N", 2)))
}
