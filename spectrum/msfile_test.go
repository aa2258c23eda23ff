package spectrum

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/ioniz"
)

func TestWriteReadMSFile_RoundTripsCanonicalIonType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exp1.ms")
	exp := Ms2Experiment{
		ID:               "exp1",
		MS2:              []Spectrum{{Peaks: []Peak{{MZ: 17.03, Intensity: 100}}}},
		IonMass:          17.03,
		PrecursorIonType: ioniz.FromIonization(ioniz.Protonation()),
	}

	require.NoError(t, WriteMSFile(path, exp))

	got, err := ReadMSFile(path)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.ID)
	assert.InDelta(t, exp.IonMass, got.IonMass, 1e-9)
	assert.Equal(t, "[M+H]+", got.PrecursorIonType.String())
	require.Len(t, got.MS2, 1)
	assert.Len(t, got.MS2[0].Peaks, 1)
}

func TestReadMSFile_MissingFileIsError(t *testing.T) {
	_, err := ReadMSFile(filepath.Join(t.TempDir(), "missing.ms"))
	assert.Error(t, err)
}
