package recal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/recal"
	"github.com/msfrag/fragid/spectrum"
)

func TestFitMedianSlope_RecoversExactLinearShift(t *testing.T) {
	// theoretical = 1.0002*observed + 0.0005, sampled exactly.
	var points []recal.CalibrationPoint
	for _, obs := range []float64{100, 200, 300, 400, 500} {
		points = append(points, recal.CalibrationPoint{Observed: obs, Theoretical: 1.0002*obs + 0.0005})
	}

	c, err := recal.FitMedianSlope(points)
	require.NoError(t, err)
	assert.InDelta(t, 1.0002, c.Slope, 1e-9)
	assert.InDelta(t, 0.0005, c.Intercept, 1e-9)
}

func TestFitMedianSlope_RobustToSingleOutlier(t *testing.T) {
	var points []recal.CalibrationPoint
	for _, obs := range []float64{100, 200, 300, 400, 500, 600, 700} {
		points = append(points, recal.CalibrationPoint{Observed: obs, Theoretical: 1.001 * obs})
	}
	// Corrupt one point badly.
	points[3].Theoretical = 5000

	c, err := recal.FitMedianSlope(points)
	require.NoError(t, err)
	assert.InDelta(t, 1.001, c.Slope, 1e-3)
}

func TestFitMedianSlope_TooFewPoints(t *testing.T) {
	_, err := recal.FitMedianSlope([]recal.CalibrationPoint{{Observed: 1, Theoretical: 1}})
	assert.ErrorIs(t, err, recal.ErrInsufficientPoints)
}

func TestRecalibrate_AppliesCorrectionToEveryPeak(t *testing.T) {
	spec := spectrum.Spectrum{Peaks: []spectrum.Peak{{MZ: 100, Intensity: 1}, {MZ: 200, Intensity: 1}}}
	var points []recal.CalibrationPoint
	for _, obs := range []float64{50, 100, 150, 200, 250, 300, 350, 400} {
		points = append(points, recal.CalibrationPoint{Observed: obs, Theoretical: obs + 0.01})
	}
	cfg := profile.DefaultRecalibrationConfig()

	corrected, c, err := recal.Recalibrate(spec, points, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.Slope, 1e-9)
	assert.InDelta(t, 100.01, corrected.Peaks[0].MZ, 1e-6)
}

func TestRecalibrate_InsufficientPointsReturnsOriginal(t *testing.T) {
	spec := spectrum.Spectrum{Peaks: []spectrum.Peak{{MZ: 100, Intensity: 1}}}
	cfg := profile.DefaultRecalibrationConfig()

	corrected, _, err := recal.Recalibrate(spec, nil, cfg)
	assert.ErrorIs(t, err, recal.ErrInsufficientPoints)
	assert.Equal(t, spec, corrected)
}
