package spectrum

import "errors"

// Sentinel errors for spectrum and experiment validation.
var (
	// ErrNoPeaks indicates a spectrum with zero peaks where at least one is required.
	ErrNoPeaks = errors.New("spectrum: no peaks")

	// ErrInvalidPeak indicates a peak with a non-finite or non-positive m/z,
	// or a negative intensity.
	ErrInvalidPeak = errors.New("spectrum: invalid peak")

	// ErrMissingPrecursor indicates an experiment with no usable precursor
	// m/z and no MS1 from which to derive one.
	ErrMissingPrecursor = errors.New("spectrum: missing precursor m/z")

	// ErrNoMS2 indicates an experiment with no MS2 spectra where at least
	// one is required.
	ErrNoMS2 = errors.New("spectrum: no MS2 spectra")
)
