package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/spectrum"
)

func TestRunIdentify_ReportsInvalidInputForUnparsableFile(t *testing.T) {
	workspaceRoot = t.TempDir()
	profilePath = ""
	ionTypeName = "[M+H]+"
	topK = 10
	recalibrating = false

	err := runIdentify(identifyCmd, []string{filepath.Join(t.TempDir(), "missing.ms")})
	assert.Error(t, err)
}

func TestRunIdentify_RejectsUnknownIonType(t *testing.T) {
	msDir := t.TempDir()
	path := filepath.Join(msDir, "exp1.ms")
	exp := spectrum.Ms2Experiment{
		ID:      "exp1",
		MS2:     []spectrum.Spectrum{{Peaks: []spectrum.Peak{{MZ: 17.0265, Intensity: 100}}}},
		IonMass: 17.0265,
	}
	require.NoError(t, spectrum.WriteMSFile(path, exp))

	workspaceRoot = t.TempDir()
	profilePath = ""
	ionTypeName = "not-a-real-ion-type"
	topK = 5
	recalibrating = false

	err := runIdentify(identifyCmd, []string{path})
	assert.Error(t, err)
}
