package spectrum

import (
	"fmt"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/profile"
)

// Ms2Experiment is the immutable input to the identification pipeline: one
// optional MS1 spectrum, one or more MS2 spectra, the precursor m/z, its
// (possibly unknown) ion type, an optional already-known neutral formula,
// and an optional per-experiment profile override.
//
// Per §9's open question, getMs2Experiment-style constructors in the source
// sometimes omit the MS1 spectrum; this implementation always preserves
// whatever MS1 is supplied, resolving that ambiguity in favor of keeping
// data the caller gave us.
type Ms2Experiment struct {
	ID               string
	MS1              *Spectrum
	MS2              []Spectrum
	IonMass          float64
	PrecursorIonType ioniz.PrecursorIonType
	KnownFormula     *formula.MolecularFormula
	ProfileOverride  *profile.MeasurementProfile
}

// Build constructs an Ms2Experiment (the buildExperiment factory helper
// from §6.1), validating that at least one MS2 spectrum is present and
// that every peak in every spectrum is well-formed.
func Build(id string, ms1 *Spectrum, ms2 []Spectrum, ionMass float64, ionType ioniz.PrecursorIonType) (Ms2Experiment, error) {
	if len(ms2) == 0 {
		return Ms2Experiment{}, ErrNoMS2
	}
	for i, s := range ms2 {
		for _, p := range s.Peaks {
			if p.MZ <= 0 || p.Intensity < 0 {
				return Ms2Experiment{}, fmt.Errorf("%w: ms2[%d]", ErrInvalidPeak, i)
			}
		}
	}

	return Ms2Experiment{ID: id, MS1: ms1, MS2: ms2, IonMass: ionMass, PrecursorIonType: ionType}, nil
}

// Validate checks the minimal shape the pipeline requires before running:
// a non-zero ion mass or an MS1 spectrum to derive one from, and at least
// one MS2 spectrum.
func (e Ms2Experiment) Validate() error {
	if e.IonMass == 0 && e.MS1 == nil {
		return ErrMissingPrecursor
	}
	if len(e.MS2) == 0 {
		return ErrNoMS2
	}

	return nil
}

// EffectiveProfile returns e.ProfileOverride if set, else base.
func (e Ms2Experiment) EffectiveProfile(base profile.MeasurementProfile) profile.MeasurementProfile {
	if e.ProfileOverride != nil {
		return *e.ProfileOverride
	}

	return base
}

// MergedMS2Peaks concatenates every MS2 spectrum's peaks into one unsorted
// slice; preprocess.Merge is responsible for binning and sorting.
func (e Ms2Experiment) MergedMS2Peaks() []Peak {
	var all []Peak
	for _, s := range e.MS2 {
		all = append(all, s.Peaks...)
	}

	return all
}
