package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/profile"
)

func writeYAML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func TestLoad_OverlaysRecognizedKeysOntoDefault(t *testing.T) {
	path := writeYAML(t, `
instrument: orbitrap
treeSizeScore: 1.5
isotopePatternHandling: score
parallelism: 8
`)
	p, err := profile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, formula.OrbitrapDeviation, p.MS1Deviation())
	assert.Equal(t, 1.5, p.TreeSizeScore())
	assert.Equal(t, profile.IsotopeScore, p.IsotopeHandling())
	assert.Equal(t, 8, p.Parallelism())
}

func TestLoad_MissingKeysKeepDefaultValues(t *testing.T) {
	path := writeYAML(t, `treeSizeScore: 0.5`)
	p, err := profile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, formula.QTOFDeviation, p.MS1Deviation())
	assert.Equal(t, profile.IsotopeFilter, p.IsotopeHandling())
	assert.Equal(t, 3, p.Parallelism())
}

func TestLoad_UnknownInstrumentIsAnError(t *testing.T) {
	path := writeYAML(t, `instrument: unknown-device`)
	_, err := profile.Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedFormulaConstraintsIsAnError(t *testing.T) {
	path := writeYAML(t, `formulaConstraints: "not a valid spec $$$"`)
	_, err := profile.Load(path)
	assert.Error(t, err)
}

func TestLoad_UnreadableFileIsAnError(t *testing.T) {
	_, err := profile.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
