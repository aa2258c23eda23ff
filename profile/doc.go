// Package profile implements MeasurementProfile: the immutable per-run
// configuration (allowed mass deviation, formula constraints, scorer
// parameters) threaded through every other package.
//
// Per §9's design note, the source mutates a shared TreeSizeScorer value in
// place and restores it in a scoped-release block; this reimplementation
// instead treats MeasurementProfile as copy-on-write (mirroring bfs/dfs's
// functional-Option pattern, but applied to a whole config value rather
// than a single call): WithTreeSizeScore returns a new profile, and the
// pipeline's adaptive loop threads the new value down explicitly instead of
// mutating shared state. This eliminates the restore-on-every-exit-path
// requirement entirely — there is nothing left to restore.
package profile
