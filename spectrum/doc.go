// Package spectrum implements Peak and Ms2Experiment: the raw measurement
// types the pipeline consumes. Peak validation and sort-order invariants
// follow the same pattern as a spectral-library reader's Spectrum.Validate
// — required fields checked first, then per-peak NaN/Inf/sign checks, then
// ordering — generalized here from peptide spectra to small-molecule MS1/MS2.
package spectrum
