// Package preprocess implements the peak preprocessor: merging MS2 peaks
// within deviation, normalizing intensities, and decomposing every merged
// peak into the set of sub-formulas consistent with its m/z, constrained
// so only formulas reachable as subsets of some parent-peak decomposition
// survive.
package preprocess
