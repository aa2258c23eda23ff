// Package decomp implements the formula decomposer: given a target mass, a
// Deviation, and FormulaConstraints, it enumerates every integer-count
// formula over the alphabet whose monoisotopic mass lies within the
// deviation window.
//
// The classic Böcker–Lipták algorithm builds an extended residue table (one
// entry per residue class modulo the smallest element mass) via dynamic
// programming, then reconstructs every hitting composition from it in
// amortized-constant time per solution. This implementation instead uses
// direct depth-first search with admissible mass-bound pruning per
// element (sorted by mass) — simpler to verify, still enumerates exactly
// the same compositions, still deterministic and lex-ordered, but without
// the residue-table's amortized-output-sensitive time bound. See
// DESIGN.md for the tradeoff.
package decomp
