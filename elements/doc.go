// Package elements provides the periodic-table catalog: element symbols,
// nominal and monoisotopic masses, and natural-abundance isotope vectors.
//
// The full periodic table and its isotope physics are treated as an
// external collaborator in this module (the spec explicitly scopes them
// out); this package carries just enough of a built-in catalog — the
// organogenic elements plus a handful of common adduct/halogen elements —
// for the decomposer, isotope analyzer, and scorers to operate on. Symbols
// are interned at package init and never mutated afterward, matching the
// "periodic-table catalog is process-wide immutable after initialization"
// rule from the concurrency model.
package elements
