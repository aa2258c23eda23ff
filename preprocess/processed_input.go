package preprocess

import (
	"math"
	"sort"

	"github.com/msfrag/fragid/decomp"
	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
)

// ScoredFormula pairs a sub-formula candidate with its mass-deviation log
// score.
type ScoredFormula struct {
	Formula formula.MolecularFormula
	Score   float64
}

// DecompositionList is the set of (formula, score) candidates consistent
// with one peak's m/z.
type DecompositionList []ScoredFormula

// Contains reports whether f is present in the list.
func (l DecompositionList) Contains(f formula.MolecularFormula) bool {
	for _, c := range l {
		if c.Formula.Equal(f) {
			return true
		}
	}

	return false
}

// ProcessedPeak is one merged, normalized MS2 peak plus its decomposition
// list.
type ProcessedPeak struct {
	Peak            spectrum.Peak
	Decompositions  DecompositionList
	IsParent        bool
}

// ProcessedInput is the experiment plus merged/decomposed MS2 peaks and
// global annotations (profile, ionization).
type ProcessedInput struct {
	Experiment spectrum.Ms2Experiment
	Peaks      []ProcessedPeak
	Profile    profile.MeasurementProfile
	Ionization ioniz.PrecursorIonType
}

// massDeviationSigma controls the Gaussian mass-deviation scorer applied
// to every sub-formula candidate.
const massDeviationSigma = 0.5 // in units of the deviation window itself

// Process merges exp's MS2 peaks, normalizes them, locates the parent peak
// (the one matching exp.IonMass within prof's MS2 deviation), decomposes
// every peak under ionType, and constrains non-parent peaks' decomposition
// lists to formulas reachable as a subset of some parent-peak formula.
func Process(exp spectrum.Ms2Experiment, ionType ioniz.PrecursorIonType, prof profile.MeasurementProfile) (ProcessedInput, error) {
	merged := Merge(exp.MergedMS2Peaks(), prof.MS2Deviation(), MergeSum)
	spec := spectrum.Spectrum{Peaks: merged}
	spec = spec.Normalized()

	dev := prof.MS2Deviation()
	constraints := prof.Constraints()

	parentIdx := -1
	for i, p := range spec.Peaks {
		if dev.Contains(p.MZ, exp.IonMass) {
			parentIdx = i

			break
		}
	}

	processed := make([]ProcessedPeak, len(spec.Peaks))
	for i, p := range spec.Peaks {
		neutralMass := ionType.IonToNeutralMass(p.MZ)
		formulas, err := decomp.Decompose(neutralMass, dev, constraints)
		if err != nil {
			return ProcessedInput{}, err
		}
		list := make(DecompositionList, 0, len(formulas))
		for _, f := range formulas {
			theoretical := ionType.NeutralToIonMass(f)
			delta := math.Abs(p.MZ - theoretical)
			tol := dev.Tolerance(p.MZ)
			score := -0.5 * (delta / (massDeviationSigma * tol)) * (delta / (massDeviationSigma * tol))
			list = append(list, ScoredFormula{Formula: f, Score: score})
		}
		sort.Slice(list, func(a, b int) bool { return list[a].Score > list[b].Score })
		processed[i] = ProcessedPeak{Peak: p, Decompositions: list, IsParent: i == parentIdx}
	}

	if parentIdx >= 0 {
		parentFormulas := processed[parentIdx].Decompositions
		for i := range processed {
			if i == parentIdx {
				continue
			}
			filtered := processed[i].Decompositions[:0]
			for _, c := range processed[i].Decompositions {
				if reachableFromAny(c.Formula, parentFormulas) {
					filtered = append(filtered, c)
				}
			}
			processed[i].Decompositions = filtered
		}
	}

	return ProcessedInput{Experiment: exp, Peaks: processed, Profile: prof, Ionization: ionType}, nil
}

func reachableFromAny(f formula.MolecularFormula, parents DecompositionList) bool {
	for _, p := range parents {
		if f.IsSubsetOf(p.Formula) {
			return true
		}
	}

	return false
}

// ForPrecursor narrows a ProcessedInput to only the sub-formula candidates
// that are subsets of precursor — the §4.4 DAG-building precondition
// "retain only peak decompositions that are subsets of F₀".
func (pi ProcessedInput) ForPrecursor(precursor formula.MolecularFormula) ProcessedInput {
	out := ProcessedInput{Experiment: pi.Experiment, Profile: pi.Profile, Ionization: pi.Ionization}
	out.Peaks = make([]ProcessedPeak, len(pi.Peaks))
	for i, pp := range pi.Peaks {
		var kept DecompositionList
		for _, c := range pp.Decompositions {
			if c.Formula.IsSubsetOf(precursor) {
				kept = append(kept, c)
			}
		}
		out.Peaks[i] = ProcessedPeak{Peak: pp.Peak, Decompositions: kept, IsParent: pp.IsParent}
	}

	return out
}
