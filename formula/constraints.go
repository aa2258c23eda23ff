package formula

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/msfrag/fragid/elements"
)

// FormulaConstraints bounds the search space the decomposer enumerates
// over: a chemical alphabet, a per-element upper bound, and structural
// filters (DBE bounds). Immutable once constructed.
type FormulaConstraints struct {
	alphabet []string // fixed declaration order, not map order
	upper    map[string]int
	minDBE   float64
	maxDBE   float64
}

// DefaultMinDBE / DefaultMaxDBE bound the degree-of-unsaturation filter used
// when no explicit bounds are requested; -0.5 allows formulas with no rings
// or double bonds (DBE as low as 0) while still rejecting the
// chemically-impossible negative values the formula (not DBE()) arithmetic
// can otherwise emit for pathological element combinations.
const (
	DefaultMinDBE = -0.5
	DefaultMaxDBE = 50.0
)

// NewConstraints builds a FormulaConstraints over alphabet with a uniform
// per-element upper bound, and default DBE bounds. Returns
// ErrMalformedAlphabet if alphabet contains an unknown symbol, a
// duplicate, or is empty.
func NewConstraints(alphabet []string, uniformBound int) (FormulaConstraints, error) {
	bounds := make(map[string]int, len(alphabet))
	for _, sym := range alphabet {
		bounds[sym] = uniformBound
	}

	return NewConstraintsWithBounds(alphabet, bounds, DefaultMinDBE, DefaultMaxDBE)
}

// NewConstraintsWithBounds builds a FormulaConstraints with an explicit
// per-element bound map and DBE range.
func NewConstraintsWithBounds(alphabet []string, upper map[string]int, minDBE, maxDBE float64) (FormulaConstraints, error) {
	if len(alphabet) == 0 {
		return FormulaConstraints{}, fmt.Errorf("%w: empty alphabet", ErrMalformedAlphabet)
	}
	seen := make(map[string]bool, len(alphabet))
	ordered := make([]string, 0, len(alphabet))
	bounds := make(map[string]int, len(alphabet))
	for _, sym := range alphabet {
		if seen[sym] {
			return FormulaConstraints{}, fmt.Errorf("%w: duplicate symbol %q", ErrMalformedAlphabet, sym)
		}
		if _, err := elements.BySymbol(sym); err != nil {
			return FormulaConstraints{}, fmt.Errorf("%w: %v", ErrMalformedAlphabet, err)
		}
		seen[sym] = true
		ordered = append(ordered, sym)
		b, ok := upper[sym]
		if !ok || b < 0 {
			return FormulaConstraints{}, fmt.Errorf("%w: missing or negative bound for %q", ErrMalformedAlphabet, sym)
		}
		bounds[sym] = b
	}

	return FormulaConstraints{alphabet: ordered, upper: bounds, minDBE: minDBE, maxDBE: maxDBE}, nil
}

// Alphabet returns the constraint's element symbols in fixed declaration
// order (used by the decomposer to keep enumeration deterministic).
func (c FormulaConstraints) Alphabet() []string {
	out := make([]string, len(c.alphabet))
	copy(out, c.alphabet)

	return out
}

// UpperBound returns the maximum allowed count for symbol (0 if the symbol
// is outside the alphabet).
func (c FormulaConstraints) UpperBound(symbol string) int { return c.upper[symbol] }

// DBERange returns the inclusive [min, max] degree-of-unsaturation window.
func (c FormulaConstraints) DBERange() (float64, float64) { return c.minDBE, c.maxDBE }

// Admits reports whether f satisfies every per-element upper bound and the
// DBE window. It does not check element membership in the alphabet — that
// is an enumeration-time invariant the decomposer itself never violates.
func (c FormulaConstraints) Admits(f MolecularFormula) bool {
	for _, sym := range f.Symbols() {
		if f.NumberOf(sym) > c.UpperBound(sym) {
			return false
		}
	}
	dbe := f.DBE()

	return dbe >= c.minDBE && dbe <= c.maxDBE
}

var compactPattern = regexp.MustCompile(`^([A-Za-z]+)\[(\d+)\]$`)
var perElementPattern = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)

// ParseConstraints builds a FormulaConstraints from either the compact alphabet form
// "CHNOPS[20]" (every element of the alphabet bounded by 20, the §6.3
// default) or a per-element form "C60H120N20O20P10S10" (each symbol bounded
// individually; a bare symbol with no trailing digits defaults to bound 1).
func ParseConstraints(spec string) (FormulaConstraints, error) {
	if m := compactPattern.FindStringSubmatch(spec); m != nil {
		bound, err := strconv.Atoi(m[2])
		if err != nil {
			return FormulaConstraints{}, fmt.Errorf("%w: %v", ErrMalformedAlphabet, err)
		}
		alphabet := splitSymbols(m[1])

		return NewConstraints(alphabet, bound)
	}

	matches := perElementPattern.FindAllStringSubmatch(spec, -1)
	if len(matches) == 0 {
		return FormulaConstraints{}, fmt.Errorf("%w: unparsable constraint spec %q", ErrMalformedAlphabet, spec)
	}
	var alphabet []string
	bounds := make(map[string]int)
	for _, m := range matches {
		sym := m[1]
		bound := 1
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return FormulaConstraints{}, fmt.Errorf("%w: %v", ErrMalformedAlphabet, err)
			}
			bound = n
		}
		if _, seen := bounds[sym]; !seen {
			alphabet = append(alphabet, sym)
		}
		bounds[sym] = bound
	}
	sort.Strings(alphabet)

	return NewConstraintsWithBounds(alphabet, bounds, DefaultMinDBE, DefaultMaxDBE)
}

// splitSymbols splits a run of concatenated single-letter symbols (the
// organogenic CHNOPS convention) into individual symbols.
func splitSymbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}

	return out
}

// Default returns the §6.3 default formula constraints: CHNOPS, each
// bounded by 20 atoms.
func Default() FormulaConstraints {
	c, err := NewConstraints([]string{"C", "H", "N", "O", "P", "S"}, 20)
	if err != nil {
		panic(err) // the default alphabet is always valid
	}

	return c
}
