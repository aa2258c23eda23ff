package recal

import (
	"sort"

	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
)

// CalibrationPoint is one matched peak: its measured m/z and the
// theoretical m/z of the formula it was assigned to.
type CalibrationPoint struct {
	Observed    float64
	Theoretical float64
}

// Correction is a fitted linear mass correction: Theoretical ≈
// Slope*Observed + Intercept.
type Correction struct {
	Slope     float64
	Intercept float64
}

// Apply maps an observed m/z to its corrected value.
func (c Correction) Apply(observed float64) float64 {
	return c.Slope*observed + c.Intercept
}

// FitMedianSlope fits a Theil-Sen robust linear correction from points:
// the slope is the median over every pair's (Δtheoretical/Δobserved), and
// the intercept is the median residual theoretical - slope*observed.
// Requires at least two points with distinct observed masses.
func FitMedianSlope(points []CalibrationPoint) (Correction, error) {
	if len(points) < 2 {
		return Correction{}, ErrInsufficientPoints
	}

	var slopes []float64
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			dObs := points[j].Observed - points[i].Observed
			if dObs == 0 {
				continue
			}
			dTheo := points[j].Theoretical - points[i].Theoretical
			slopes = append(slopes, dTheo/dObs)
		}
	}
	if len(slopes) == 0 {
		return Correction{}, ErrDegenerateFit
	}
	slope := median(slopes)

	intercepts := make([]float64, len(points))
	for i, p := range points {
		intercepts[i] = p.Theoretical - slope*p.Observed
	}
	intercept := median(intercepts)

	return Correction{Slope: slope, Intercept: intercept}, nil
}

// median returns the median of xs. xs is sorted in place.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}

	return (xs[n/2-1] + xs[n/2]) / 2
}

// Recalibrate fits a correction from points (requiring at least
// cfg.MinPeaks of them) and applies it to every peak in spec, returning a
// new, corrected Spectrum. spec is not modified.
func Recalibrate(spec spectrum.Spectrum, points []CalibrationPoint, cfg profile.RecalibrationConfig) (spectrum.Spectrum, Correction, error) {
	if len(points) < cfg.MinPeaks {
		return spec, Correction{}, ErrInsufficientPoints
	}

	correction, err := FitMedianSlope(points)
	if err != nil {
		return spec, Correction{}, err
	}

	out := make([]spectrum.Peak, len(spec.Peaks))
	for i, p := range spec.Peaks {
		out[i] = spectrum.Peak{MZ: correction.Apply(p.MZ), Intensity: p.Intensity}
	}

	return spectrum.Spectrum{Peaks: out}, correction, nil
}

// SelectCalibrationPoints builds calibration points from parallel per-peak
// slices, keeping every index whose score is at least minScore and whose
// intensity is at least cfg's MinIntensity floor. No peak (the parent peak
// included) is kept without passing both checks.
func SelectCalibrationPoints(
	observed []float64,
	theoretical []float64,
	intensity []float64,
	score []float64,
	minScore float64,
	cfg profile.RecalibrationConfig,
) []CalibrationPoint {
	var points []CalibrationPoint
	for i := range observed {
		if intensity[i] < cfg.MinIntensity {
			continue
		}
		if score[i] < minScore {
			continue
		}
		points = append(points, CalibrationPoint{Observed: observed[i], Theoretical: theoretical[i]})
	}

	return points
}
