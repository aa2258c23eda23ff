package isotope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/isotope"
)

func TestSimulateIsotopePattern_M0IsBasePeakMZ(t *testing.T) {
	glucose := formula.Of("C", 6, "H", 12, "O", 6)
	ionType := ioniz.FromIonization(ioniz.Protonation())

	pattern := isotope.SimulateIsotopePattern(glucose, ionType.NeutralToIonMass)
	assert.NotEmpty(t, pattern.Peaks)
	assert.InDelta(t, ionType.NeutralToIonMass(glucose), pattern.Peaks[0].MZ, 1e-6)
}

func TestSimulateIsotopePattern_IntensitiesSumToApproximatelyOne(t *testing.T) {
	formulaWithChlorine := formula.Of("C", 2, "H", 5, "Cl", 1)
	ionType := ioniz.FromIonization(ioniz.Protonation())

	pattern := isotope.SimulateIsotopePattern(formulaWithChlorine, ionType.NeutralToIonMass)
	var total float64
	for _, p := range pattern.Peaks {
		total += p.Intensity
	}
	assert.InDelta(t, 1.0, total, 1e-6)
}

func TestSimulateIsotopePattern_BoundedByMaxSimulatedPeaks(t *testing.T) {
	big := formula.Of("C", 60, "H", 60)
	ionType := ioniz.FromIonization(ioniz.Protonation())

	pattern := isotope.SimulateIsotopePattern(big, ionType.NeutralToIonMass)
	assert.LessOrEqual(t, len(pattern.Peaks), isotope.MaxSimulatedPeaks)
}
