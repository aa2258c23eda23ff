package decomp

import (
	"errors"
	"sort"

	"github.com/msfrag/fragid/elements"
	"github.com/msfrag/fragid/formula"
)

// ErrMalformedAlphabet surfaces a FormulaConstraints alphabet problem that
// only shows up once masses are looked up (an interned symbol became
// unavailable between construction and decomposition — should not happen
// in practice since elements is immutable after init, but kept as the
// "error only on malformed alphabet" contract from §4.1 requires a
// reachable sentinel).
var ErrMalformedAlphabet = errors.New("decomp: malformed alphabet")

// residue pairs an alphabet symbol with its monoisotopic mass, sorted
// ascending by mass so the search can prune using the cheapest remaining
// element first (the residue-table ordering the Böcker–Lipták algorithm
// also relies on).
type residue struct {
	symbol string
	mass   float64
	upper  int
}

// Decompose enumerates every formula over constraints.Alphabet() within
// constraints' per-element bounds whose mass lies in
// [targetMass-Δ, targetMass+Δ], Δ = dev.Tolerance(targetMass). Output is
// deduplicated (the search structure cannot produce duplicates) and
// returned in deterministic lex order by alphabet. An infeasible
// (over-)constrained search returns an empty, non-error result; only a
// malformed alphabet is an error.
func Decompose(targetMass float64, dev formula.Deviation, constraints formula.FormulaConstraints) ([]formula.MolecularFormula, error) {
	alphabet := constraints.Alphabet()
	residues := make([]residue, 0, len(alphabet))
	for _, sym := range alphabet {
		el, err := elements.BySymbol(sym)
		if err != nil {
			return nil, ErrMalformedAlphabet
		}
		residues = append(residues, residue{symbol: sym, mass: el.Mono, upper: constraints.UpperBound(sym)})
	}
	// Sort ascending by mass for tighter pruning; ties broken by symbol to
	// keep the search (and therefore output order before final re-sort)
	// deterministic.
	sort.Slice(residues, func(i, j int) bool {
		if residues[i].mass != residues[j].mass {
			return residues[i].mass < residues[j].mass
		}

		return residues[i].symbol < residues[j].symbol
	})

	delta := dev.Tolerance(targetMass)
	lo, hi := targetMass-delta, targetMass+delta

	// suffixMin[i] / suffixMax[i]: the minimum/maximum achievable
	// mass contribution from residues[i:], used to prune branches that
	// cannot possibly land the running total in [lo, hi].
	n := len(residues)
	suffixMin := make([]float64, n+1)
	suffixMax := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1]
		suffixMax[i] = suffixMax[i+1] + float64(residues[i].upper)*residues[i].mass
	}

	var out []formula.MolecularFormula
	counts := make([]int, n)

	var search func(idx int, massSoFar float64)
	search = func(idx int, massSoFar float64) {
		if idx == n {
			if massSoFar >= lo && massSoFar <= hi {
				c := make(map[string]int, n)
				for i, r := range residues {
					if counts[i] > 0 {
						c[r.symbol] = counts[i]
					}
				}
				f := formula.New(c)
				if constraints.Admits(f) {
					out = append(out, f)
				}
			}

			return
		}
		// Prune: even with zero more contribution we've overshot, or even
		// maxing out every remaining element we can't reach lo.
		if massSoFar+suffixMin[idx] > hi || massSoFar+suffixMax[idx] < lo {
			return
		}
		r := residues[idx]
		maxCount := r.upper
		if r.mass > 0 {
			if byBudget := int((hi - massSoFar) / r.mass); byBudget < maxCount {
				maxCount = byBudget
			}
		}
		for k := 0; k <= maxCount; k++ {
			counts[idx] = k
			search(idx+1, massSoFar+float64(k)*r.mass)
		}
		counts[idx] = 0
	}
	search(0, 0)

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out, nil
}
