package isotope

import (
	"math"
	"sort"

	"github.com/msfrag/fragid/decomp"
	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/spectrum"
)

// ScoredFormula pairs a candidate neutral formula with its isotope-pattern
// log-likelihood score.
type ScoredFormula struct {
	Formula formula.MolecularFormula
	Score   float64
}

// Pattern is one extracted MS1 isotope cluster plus its scored candidates,
// sorted descending by score.
type Pattern struct {
	MonoisotopicMass float64
	Candidates       []ScoredFormula
	BestScore        float64
}

// clusterSpacing is the expected spacing (Da) between consecutive isotope
// peaks in a cluster (≈ 1 Da for singly-charged small molecules).
const clusterSpacing = 1.0033548378 // ¹³C - ¹²C mass difference

// Extract scans ms1 for peak clusters spaced ≈1 Da apart around
// precursorMZ, emitting one Pattern candidate monoisotopic mass per
// plausible cluster start (peaks with no lower neighbor within
// clusterSpacing±dev are treated as monoisotopic peak candidates).
func Extract(ms1 spectrum.Spectrum, precursorMZ float64, dev formula.Deviation) []float64 {
	var monoCandidates []float64
	peaks := ms1.Peaks
	for i, p := range peaks {
		if p.MZ > precursorMZ+dev.Tolerance(precursorMZ) {
			continue
		}
		hasLower := false
		for j := i - 1; j >= 0; j-- {
			if p.MZ-peaks[j].MZ > clusterSpacing+dev.Tolerance(p.MZ) {
				break
			}
			if dev.Contains(p.MZ-peaks[j].MZ, clusterSpacing) {
				hasLower = true

				break
			}
		}
		if !hasLower {
			monoCandidates = append(monoCandidates, p.MZ)
		}
	}

	return monoCandidates
}

// Score decomposes each monoisotopic mass candidate (neutral mass =
// ionToNeutralMass(monoMass)) and scores every resulting formula's
// simulated isotope pattern against the peaks observed near monoMass in
// ms1, returning one Pattern per candidate monoisotopic mass.
func Score(
	ms1 spectrum.Spectrum,
	monoCandidates []float64,
	ionToNeutralMass func(float64) float64,
	neutralToIonMass func(formula.MolecularFormula) float64,
	dev formula.Deviation,
	constraints formula.FormulaConstraints,
) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(monoCandidates))
	for _, monoMZ := range monoCandidates {
		neutralMass := ionToNeutralMass(monoMZ)
		formulas, err := decomp.Decompose(neutralMass, dev, constraints)
		if err != nil {
			return nil, err
		}
		measured := extractClusterPeaks(ms1, monoMZ, dev)

		var scored []ScoredFormula
		for _, f := range formulas {
			sim := SimulateIsotopePattern(f, neutralToIonMass)
			scored = append(scored, ScoredFormula{Formula: f, Score: logLikelihood(measured, sim)})
		}
		sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

		best := math.Inf(-1)
		if len(scored) > 0 {
			best = scored[0].Score
		}
		patterns = append(patterns, Pattern{MonoisotopicMass: monoMZ, Candidates: scored, BestScore: best})
	}
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].BestScore > patterns[j].BestScore })

	return patterns, nil
}

// extractClusterPeaks collects the peaks in ms1 belonging to the cluster
// starting at monoMZ (monoMZ + k·clusterSpacing for k = 0, 1, 2, ...
// within deviation), returned in the same isotopologue-indexed form as a
// simulated pattern so the two can be compared directly.
func extractClusterPeaks(ms1 spectrum.Spectrum, monoMZ float64, dev formula.Deviation) []spectrum.Peak {
	var cluster []spectrum.Peak
	for shift := 0; shift < MaxSimulatedPeaks; shift++ {
		target := monoMZ + float64(shift)*clusterSpacing
		var best *spectrum.Peak
		for i := range ms1.Peaks {
			p := ms1.Peaks[i]
			if dev.Contains(p.MZ, target) {
				if best == nil || p.Intensity > best.Intensity {
					best = &ms1.Peaks[i]
				}
			}
		}
		if best != nil {
			cluster = append(cluster, *best)
		}
	}

	return cluster
}

// logLikelihood scores measured against the formula's simulated pattern
// sim using a Gaussian model on mass deviation (per peak, aligned by
// nominal shift) and a log-normal model on relative intensity. Peaks
// present in sim but absent from measured contribute a fixed penalty;
// peaks present in measured but absent from sim are ignored (noise).
func logLikelihood(measured []spectrum.Peak, sim spectrum.Spectrum) float64 {
	if len(measured) == 0 || len(sim.Peaks) == 0 {
		return math.Inf(-1)
	}
	measuredNorm := normalizeRelative(measured)

	const (
		massSigma      = 0.002  // Da, typical qtof-class mass accuracy
		intensitySigma = 0.35   // log-intensity-ratio spread
		missingPenalty = -8.0
	)

	var score float64
	for i, simPeak := range sim.Peaks {
		if i >= len(measuredNorm) {
			score += missingPenalty
			continue
		}
		mp := measuredNorm[i]
		massDelta := mp.MZ - simPeak.MZ
		score += gaussianLogPDF(massDelta, massSigma)
		if mp.Intensity > 0 && simPeak.Intensity > 0 {
			logRatio := math.Log(mp.Intensity / simPeak.Intensity)
			score += gaussianLogPDF(logRatio, intensitySigma)
		}
	}

	return score
}

func normalizeRelative(peaks []spectrum.Peak) []spectrum.Peak {
	if len(peaks) == 0 {
		return peaks
	}
	base := peaks[0].Intensity
	if base <= 0 {
		return peaks
	}
	out := make([]spectrum.Peak, len(peaks))
	for i, p := range peaks {
		out[i] = spectrum.Peak{MZ: p.MZ, Intensity: p.Intensity / base}
	}

	return out
}

func gaussianLogPDF(x, sigma float64) float64 {
	return -0.5*math.Log(2*math.Pi*sigma*sigma) - (x*x)/(2*sigma*sigma)
}

// Filter applies §4.2's filtering rule to the top (highest BestScore)
// pattern: keep formulas while score > 0 AND score/bestScore >= 0.666 AND
// score/previousScore >= 0.5, stopping at the first violation. Returns the
// filtered {formula string -> score} map and the best score. An empty
// patterns slice returns an empty map and a best score of 0.
func Filter(patterns []Pattern) (map[string]float64, float64) {
	out := make(map[string]float64)
	if len(patterns) == 0 {
		return out, 0
	}
	top := patterns[0]
	if len(top.Candidates) == 0 {
		return out, top.BestScore
	}
	best := top.BestScore
	prev := best
	for _, c := range top.Candidates {
		if c.Score <= 0 {
			break
		}
		if best != 0 && c.Score/best < 0.666 {
			break
		}
		if prev != 0 && c.Score/prev < 0.5 {
			break
		}
		out[c.Formula.String()] = c.Score
		prev = c.Score
	}

	return out, best
}
