package profile

import (
	"github.com/msfrag/fragid/formula"
)

// IsotopeHandling selects how MS1 isotope-pattern information influences
// candidate selection and scoring (§4.7.1).
type IsotopeHandling int

const (
	// IsotopeOmit ignores MS1 entirely.
	IsotopeOmit IsotopeHandling = iota

	// IsotopeFilter restricts candidate formulas to the isotope-filtered set.
	IsotopeFilter

	// IsotopeScore filters (when the best pattern score exceeds 10) and
	// additionally adds an "isotope" score to each tree rooted at a
	// filtered formula.
	IsotopeScore
)

// String implements fmt.Stringer.
func (h IsotopeHandling) String() string {
	switch h {
	case IsotopeOmit:
		return "omit"
	case IsotopeFilter:
		return "filter"
	case IsotopeScore:
		return "score"
	default:
		return "unknown"
	}
}

// RecalibrationConfig parameterizes the median-slope recalibration fit
// (§6.3, §4.6).
type RecalibrationConfig struct {
	PPM          float64
	Abs          float64
	MinPeaks     int
	MinIntensity float64
}

// DefaultRecalibrationConfig matches §6.3's stated defaults.
func DefaultRecalibrationConfig() RecalibrationConfig {
	return RecalibrationConfig{PPM: 2, Abs: 5e-4, MinPeaks: 8, MinIntensity: 0.01}
}

// MaxTreeSizeIncrease bounds how far the adaptive loop (§4.7.1 step 6) may
// raise TreeSizeScore above its starting value before giving up on
// sufficiency and accepting the current best trees.
const MaxTreeSizeIncrease = 3.0

// MeasurementProfile is the immutable, per-run configuration. Construct via
// Default or NewMeasurementProfile; derive modified copies via the With...
// methods, never by mutating fields directly — every field is unexported
// for exactly this reason.
type MeasurementProfile struct {
	ms1Deviation    formula.Deviation
	ms2Deviation    formula.Deviation
	constraints     formula.FormulaConstraints
	treeSizeScore   float64
	recalibration   RecalibrationConfig
	isotopeHandling IsotopeHandling
	parallelism     int
}

// NewMeasurementProfile constructs a MeasurementProfile from explicit
// values.
func NewMeasurementProfile(
	ms1Deviation, ms2Deviation formula.Deviation,
	constraints formula.FormulaConstraints,
	treeSizeScore float64,
	recal RecalibrationConfig,
	isotopeHandling IsotopeHandling,
	parallelism int,
) MeasurementProfile {
	if parallelism <= 0 {
		parallelism = 3
	}

	return MeasurementProfile{
		ms1Deviation:    ms1Deviation,
		ms2Deviation:    ms2Deviation,
		constraints:     constraints,
		treeSizeScore:   treeSizeScore,
		recalibration:   recal,
		isotopeHandling: isotopeHandling,
		parallelism:     parallelism,
	}
}

// Default returns the §6.3 default profile: qtof deviations, CHNOPS[20],
// zero tree-size bonus, default recalibration, filter-mode isotope
// handling, parallelism 3.
func Default() MeasurementProfile {
	return NewMeasurementProfile(
		formula.QTOFDeviation, formula.QTOFDeviation,
		formula.Default(),
		0.0,
		DefaultRecalibrationConfig(),
		IsotopeFilter,
		3,
	)
}

// MS1Deviation / MS2Deviation / Constraints / TreeSizeScore / Recalibration
// / IsotopeHandling / Parallelism are read accessors; the profile itself
// stays immutable.
func (p MeasurementProfile) MS1Deviation() formula.Deviation        { return p.ms1Deviation }
func (p MeasurementProfile) MS2Deviation() formula.Deviation        { return p.ms2Deviation }
func (p MeasurementProfile) Constraints() formula.FormulaConstraints { return p.constraints }
func (p MeasurementProfile) TreeSizeScore() float64                 { return p.treeSizeScore }
func (p MeasurementProfile) Recalibration() RecalibrationConfig     { return p.recalibration }
func (p MeasurementProfile) IsotopeHandling() IsotopeHandling       { return p.isotopeHandling }
func (p MeasurementProfile) Parallelism() int                      { return p.parallelism }

// WithTreeSizeScore returns a copy of p with TreeSizeScore replaced by s.
// This is the sole mutation point the adaptive loop (pipeline §4.7.1 step
// 6) uses instead of the source's in-place-mutate-then-restore pattern.
func (p MeasurementProfile) WithTreeSizeScore(s float64) MeasurementProfile {
	p.treeSizeScore = s

	return p
}

// WithConstraints returns a copy of p with its FormulaConstraints replaced
// (e.g. to narrow the alphabet for a specific experiment).
func (p MeasurementProfile) WithConstraints(c formula.FormulaConstraints) MeasurementProfile {
	p.constraints = c

	return p
}

// WithIsotopeHandling returns a copy of p with isotope handling replaced.
func (p MeasurementProfile) WithIsotopeHandling(h IsotopeHandling) MeasurementProfile {
	p.isotopeHandling = h

	return p
}
