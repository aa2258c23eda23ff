// Package formula implements MolecularFormula, FormulaConstraints, and
// Deviation — the immutable value types every other package in fragid
// builds on.
//
// MolecularFormula is a vector of non-negative integer element counts; its
// arithmetic (Add/Subtract), mass computation, and Hill-order rendering
// follow the teacher's convention of small, copy-by-value, lock-free data
// types (contrast with fgraph.Graph, which is large and mutated
// concurrently and therefore carries explicit locks).
package formula
