package formula_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/formula"
)

func TestParse_RoundTripsWithString(t *testing.T) {
	cases := []formula.MolecularFormula{
		formula.Of("C", 6, "H", 12, "O", 6),
		formula.Of("N", 2),
		formula.Of("C", 1, "H", 4),
		formula.Of("Cl", 1, "H", 1),
	}
	for _, f := range cases {
		parsed, err := formula.Parse(f.String())
		require.NoError(t, err)
		assert.True(t, f.Equal(parsed), "Parse(%q) = %v, want %v", f.String(), parsed, f)
	}
}

func TestParse_RejectsEmptyAndMalformedInput(t *testing.T) {
	_, err := formula.Parse("")
	assert.ErrorIs(t, err, formula.ErrParse)

	_, err = formula.Parse("6C")
	assert.ErrorIs(t, err, formula.ErrParse)

	_, err = formula.Parse("C0")
	assert.ErrorIs(t, err, formula.ErrParse)
}

func TestString_HillOrderPutsCarbonThenHydrogenFirst(t *testing.T) {
	f := formula.Of("O", 6, "N", 2, "C", 6, "H", 12)
	assert.Equal(t, "C6H12N2O6", f.String())
}

func TestString_OmitsCountOfOne(t *testing.T) {
	f := formula.Of("Cl", 1, "H", 1)
	assert.Equal(t, "HCl", f.String())
}

func TestIsSubsetOf(t *testing.T) {
	precursor := formula.Of("C", 2, "H", 6)
	assert.True(t, formula.Of("C", 1, "H", 4).IsSubsetOf(precursor))
	assert.True(t, precursor.IsSubsetOf(precursor))
	assert.False(t, formula.Of("C", 3).IsSubsetOf(precursor))
}

func TestSubtract_SaturatesToFailureOnNegativeCount(t *testing.T) {
	loss, ok := formula.Of("C", 2, "H", 6).Subtract(formula.Of("H", 2))
	require.True(t, ok)
	assert.True(t, loss.Equal(formula.Of("C", 2, "H", 4)))

	_, ok = formula.Of("H", 1).Subtract(formula.Of("H", 2))
	assert.False(t, ok)
}

func TestAdd_IsCommutativeAndLeavesOperandsUnmodified(t *testing.T) {
	a := formula.Of("C", 1, "H", 4)
	b := formula.Of("O", 1)
	sum := a.Add(b)
	assert.True(t, sum.Equal(formula.Of("C", 1, "H", 4, "O", 1)))
	assert.True(t, a.Equal(formula.Of("C", 1, "H", 4)), "Add must not mutate its receiver")
}

func TestMass_SumsMonoisotopicMasses(t *testing.T) {
	water := formula.Of("H", 2, "O", 1)
	assert.InDelta(t, 18.0105646, water.Mass(), 1e-6)
}

func TestDBE_BenzeneHasFourRingsPlusBonds(t *testing.T) {
	benzene := formula.Of("C", 6, "H", 6)
	assert.True(t, math.Abs(benzene.DBE()-4.0) < 1e-9)
}
