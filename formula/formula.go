package formula

import (
	"sort"
	"strings"

	"github.com/msfrag/fragid/elements"
)

// MolecularFormula is an immutable vector of non-negative integer element
// counts. The zero value is the empty formula. Equality is component-wise:
// use Equal, not ==, since the internal representation may contain entries
// with a zero count.
type MolecularFormula struct {
	counts map[string]int
}

// New builds a MolecularFormula from a counts map. The map is copied so the
// caller's map may be freely mutated afterward; zero and negative entries
// are dropped (negative entries would violate the non-negative invariant).
func New(counts map[string]int) MolecularFormula {
	c := make(map[string]int, len(counts))
	for sym, n := range counts {
		if n > 0 {
			c[sym] = n
		}
	}

	return MolecularFormula{counts: c}
}

// Of is a convenience constructor from alternating symbol/count pairs, e.g.
// Of("C", 6, "H", 12, "O", 6) for glucose. Panics on malformed arguments;
// intended for literal construction in code and tests, not user input.
func Of(pairs ...interface{}) MolecularFormula {
	c := make(map[string]int, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		sym := pairs[i].(string)
		n := pairs[i+1].(int)
		if n > 0 {
			c[sym] = n
		}
	}

	return MolecularFormula{counts: c}
}

// NumberOf returns the count of the given element symbol (0 if absent).
func (f MolecularFormula) NumberOf(symbol string) int {
	if f.counts == nil {
		return 0
	}

	return f.counts[symbol]
}

// Symbols returns the formula's element symbols in Hill order: carbon
// first (if present), then hydrogen (if present), then every other
// element alphabetically.
func (f MolecularFormula) Symbols() []string {
	out := make([]string, 0, len(f.counts))
	_, hasC := f.counts["C"]
	_, hasH := f.counts["H"]
	for sym := range f.counts {
		if sym == "C" || sym == "H" {
			continue
		}
		out = append(out, sym)
	}
	sort.Strings(out)
	if hasH {
		out = append([]string{"H"}, out...)
	}
	if hasC {
		out = append([]string{"C"}, out...)
	}

	return out
}

// Mass returns the formula's monoisotopic mass, the sum over every element
// of count × that element's monoisotopic mass.
func (f MolecularFormula) Mass() float64 {
	var m float64
	for sym, n := range f.counts {
		el, err := elements.BySymbol(sym)
		if err != nil {
			continue // unknown symbols contribute nothing; constraints reject them upstream
		}
		m += float64(n) * el.Mono
	}

	return m
}

// Add returns a new formula with every element count summed; f and g are
// left unmodified (immutable value semantics).
func (f MolecularFormula) Add(g MolecularFormula) MolecularFormula {
	out := make(map[string]int, len(f.counts)+len(g.counts))
	for sym, n := range f.counts {
		out[sym] = n
	}
	for sym, n := range g.counts {
		out[sym] += n
	}

	return MolecularFormula{counts: out}
}

// Subtract returns f - g, saturating to failure (ok=false) if any resulting
// count would be negative — per the spec's "saturating to failure if any
// count would go negative" rule. On failure the zero MolecularFormula is
// returned.
func (f MolecularFormula) Subtract(g MolecularFormula) (MolecularFormula, bool) {
	out := make(map[string]int, len(f.counts))
	for sym, n := range f.counts {
		out[sym] = n
	}
	for sym, n := range g.counts {
		out[sym] -= n
		if out[sym] < 0 {
			return MolecularFormula{}, false
		}
	}

	return New(out), true
}

// IsSubsetOf reports whether every element count of f is ≤ the
// corresponding count in g — the edge condition used throughout the
// fragmentation DAG (a fragment formula must be a subset of its parent).
func (f MolecularFormula) IsSubsetOf(g MolecularFormula) bool {
	for sym, n := range f.counts {
		if n > g.NumberOf(sym) {
			return false
		}
	}

	return true
}

// Equal reports component-wise equality.
func (f MolecularFormula) Equal(g MolecularFormula) bool {
	if len(f.counts) != len(g.counts) {
		return false
	}
	for sym, n := range f.counts {
		if g.NumberOf(sym) != n {
			return false
		}
	}

	return true
}

// IsEmpty reports whether the formula has no elements (the neutral element
// of Add).
func (f MolecularFormula) IsEmpty() bool { return len(f.counts) == 0 }

// String renders the formula in Hill order, e.g. "C6H12O6". Elements with
// count 1 omit the numeral; elements with count 0 are never emitted.
func (f MolecularFormula) String() string {
	var b strings.Builder
	for _, sym := range f.Symbols() {
		n := f.counts[sym]
		if n == 0 {
			continue
		}
		b.WriteString(sym)
		if n != 1 {
			b.WriteString(itoa(n))
		}
	}

	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}

	return string(digits)
}

// valence is the default bonding valence used by DBE estimation. This is a
// deliberately small table (the full valence model lives with the external
// periodic-table/element-catalog collaborator); unknown elements are
// treated as monovalent, matching a conservative terminal-substituent
// assumption.
var valence = map[string]int{
	"C": 4, "H": 1, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1, "Na": 1, "K": 1,
}

// DBE returns the ring-plus-double-bond equivalent (degree of
// unsaturation): 1 + Σ_i n_i·(v_i/2 − 1) over all elements present,
// the standard formula used to filter chemically implausible formulas.
func (f MolecularFormula) DBE() float64 {
	dbe := 1.0
	for sym, n := range f.counts {
		v, ok := valence[sym]
		if !ok {
			v = 1
		}
		dbe += float64(n) * (float64(v)/2.0 - 1.0)
	}

	return dbe
}
