package formula

import (
	"fmt"
	"unicode"
)

// Parse parses a Hill-order (or arbitrary-order) formula string such as
// "C6H12O6" into a MolecularFormula. Parse(f.String()) == f for every
// MolecularFormula f produced by this package (round-trip invariant,
// §8 Round-trip).
func Parse(s string) (MolecularFormula, error) {
	counts := make(map[string]int)
	r := []rune(s)
	i := 0
	for i < len(r) {
		if !unicode.IsUpper(r[i]) {
			return MolecularFormula{}, fmt.Errorf("%w: unexpected character %q in %q", ErrParse, r[i], s)
		}
		start := i
		i++
		for i < len(r) && unicode.IsLower(r[i]) {
			i++
		}
		symbol := string(r[start:i])

		numStart := i
		for i < len(r) && unicode.IsDigit(r[i]) {
			i++
		}
		count := 1
		if i > numStart {
			n, err := atoi(string(r[numStart:i]))
			if err != nil {
				return MolecularFormula{}, fmt.Errorf("%w: bad count for %q in %q", ErrParse, symbol, s)
			}
			count = n
		}
		if count <= 0 {
			return MolecularFormula{}, fmt.Errorf("%w: non-positive count for %q", ErrParse, symbol)
		}
		counts[symbol] += count
	}
	if len(counts) == 0 {
		return MolecularFormula{}, fmt.Errorf("%w: empty formula", ErrParse)
	}

	return New(counts), nil
}

func atoi(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: not a digit %q", ErrParse, c)
		}
		n = n*10 + int(c-'0')
	}

	return n, nil
}
