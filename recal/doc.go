// Package recal implements mass recalibration: given a set of matched
// (observed, theoretical) mass pairs from high-confidence peak
// assignments, fit a robust linear correction and apply it to a spectrum.
//
// The estimator is Theil-Sen (median of pairwise slopes): unlike ordinary
// least squares, a single badly mis-assigned calibration point cannot
// dominate the fit, since its pairwise slopes are each outvoted by the
// median over all other pairs. matrix's dense linear-algebra kernels
// (impl_linear_algebra.go) solve general Ax=b systems over *Dense
// matrices; a 1-D robust slope fit over a handful of calibration points
// has no matrix structure to exploit there, so this package works
// directly over float64 slices instead of forcing the points through a
// Dense wrapper.
package recal
