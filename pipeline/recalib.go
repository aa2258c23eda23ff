package pipeline

import (
	"github.com/msfrag/fragid/fgraph"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/preprocess"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/recal"
	"github.com/msfrag/fragid/spectrum"
)

// recalibrateAll implements §4.6/§4.7.1 step 7: for each retained tree,
// collect (observed, theoretical) pairs from its own nodes, fit a
// median-slope correction when enough pairs exist, rebuild the DAG over
// the corrected spectrum, and recompute that formula's optimal tree. A
// candidate with too few calibration points is returned unchanged.
func recalibrateAll(
	exp spectrum.Ms2Experiment,
	prof profile.MeasurementProfile,
	ionType ioniz.PrecursorIonType,
	ranked []rankedCandidate,
	isoFormulas map[string]float64,
) []rankedCandidate {
	cfg := prof.Recalibration()
	scorers := fgraph.DefaultScorerSet(prof.TreeSizeScore())

	out := make([]rankedCandidate, len(ranked))
	for i, rc := range ranked {
		points := calibrationPoints(rc, ionType)
		if len(points) < cfg.MinPeaks {
			out[i] = rc

			continue
		}

		correction, err := recal.FitMedianSlope(points)
		if err != nil {
			out[i] = rc

			continue
		}

		correctedExp := applyCorrection(exp, correction)
		processed, err := preprocess.Process(correctedExp, ionType, prof)
		if err != nil {
			out[i] = rc

			continue
		}

		recomputed := searchCandidate(processed, rc.formula, ionType, scorers)
		totalIntensity := totalPeakIntensity(processed)
		score := recomputed.tree.Weight
		if prof.IsotopeHandling() == profile.IsotopeScore && isoFormulas != nil {
			score += isoFormulas[rc.formula.String()]
		}

		out[i] = rankedCandidate{
			candidateResult:         recomputed,
			score:                   score,
			explainedIntensityRatio: explainedIntensityRatio(recomputed.tree, totalIntensity),
			recalibrated:            true,
		}
	}

	return out
}

// calibrationPoints extracts one (observed, theoretical) pair per
// non-root node of rc's tree.
func calibrationPoints(rc rankedCandidate, ionType ioniz.PrecursorIonType) []recal.CalibrationPoint {
	var points []recal.CalibrationPoint
	for _, n := range rc.tree.Nodes {
		if n.ID == fgraph.RootID {
			continue
		}
		points = append(points, recal.CalibrationPoint{
			Observed:    n.MZ,
			Theoretical: ionType.NeutralToIonMass(n.Formula),
		})
	}

	return points
}

// applyCorrection returns a copy of exp with correction applied to every
// MS2 peak (MS1, if present, is left uncorrected — recalibration is
// scoped to the fragment peaks that anchored the fit).
func applyCorrection(exp spectrum.Ms2Experiment, correction recal.Correction) spectrum.Ms2Experiment {
	out := exp
	out.MS2 = make([]spectrum.Spectrum, len(exp.MS2))
	for i, s := range exp.MS2 {
		peaks := make([]spectrum.Peak, len(s.Peaks))
		for j, p := range s.Peaks {
			peaks[j] = spectrum.Peak{MZ: correction.Apply(p.MZ), Intensity: p.Intensity}
		}
		out.MS2[i] = spectrum.Spectrum{Peaks: peaks}
	}
	out.IonMass = correction.Apply(exp.IonMass)

	return out
}
