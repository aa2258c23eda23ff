// Package pipeline implements the identification pipeline orchestrator:
// MS1 isotope filtering, candidate-formula enumeration, per-candidate
// fragmentation-DAG construction and colorful-subtree extraction,
// adaptive tree-size feedback, optional recalibration, and final ranking.
//
// Unlike the source this behavior is distilled from, the tree-size bias
// is threaded as an immutable value through each adaptive-loop iteration
// (profile.MeasurementProfile.WithTreeSizeScore returns a new value) —
// there is no process-wide mutable scorer to restore on exit, since there
// is nothing shared to mutate. Every other behavior described in §4.7 is
// preserved: the per-formula worker pool, the bounded best-set, and the
// sufficiency test that drives the loop.
package pipeline
