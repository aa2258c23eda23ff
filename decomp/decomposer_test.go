package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/decomp"
	"github.com/msfrag/fragid/formula"
)

func TestDecompose_ContainsTheOriginatingFormula(t *testing.T) {
	constraints := formula.Default()
	dev := formula.QTOFDeviation

	cases := []formula.MolecularFormula{
		formula.Of("C", 6, "H", 12, "O", 6),
		formula.Of("C", 1, "H", 4),
		formula.Of("N", 2),
	}
	for _, f := range cases {
		out, err := decomp.Decompose(f.Mass(), dev, constraints)
		require.NoError(t, err)

		found := false
		for _, c := range out {
			if c.Equal(f) {
				found = true

				break
			}
		}
		assert.True(t, found, "Decompose(%v) did not contain %s among %d candidates", f.Mass(), f.String(), len(out))
	}
}

func TestDecompose_RespectsPerElementUpperBound(t *testing.T) {
	constraints, err := formula.NewConstraints([]string{"C", "H"}, 2)
	require.NoError(t, err)

	out, err := decomp.Decompose(formula.Of("C", 1, "H", 4).Mass(), formula.QTOFDeviation, constraints)
	require.NoError(t, err)
	for _, c := range out {
		assert.LessOrEqual(t, c.NumberOf("C"), 2)
		assert.LessOrEqual(t, c.NumberOf("H"), 2)
	}
}

func TestDecompose_UnreachableMassReturnsEmptyNotError(t *testing.T) {
	constraints, err := formula.NewConstraints([]string{"C"}, 1)
	require.NoError(t, err)

	out, err := decomp.Decompose(10000.0, formula.NewDeviation(0, 1e-6), constraints)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecompose_ReturnsResultsInDeterministicLexOrder(t *testing.T) {
	constraints := formula.Default()
	out, err := decomp.Decompose(formula.Of("C", 6, "H", 12, "O", 6).Mass(), formula.QTOFDeviation, constraints)
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].String(), out[i].String())
	}
}
