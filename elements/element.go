package elements

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol is returned by BySymbol when no element is interned
// under the requested symbol.
var ErrUnknownSymbol = errors.New("elements: unknown symbol")

// Isotope is one naturally-occurring isotopologue of an Element: its
// nucleon count, exact mass, and relative natural abundance (0..1].
type Isotope struct {
	NominalMass int
	Mass        float64
	Abundance   float64
}

// Element is an immutable periodic-table entry. Two Elements are the same
// element iff their Symbol matches; compare Symbol fields, since the
// Isotopes slice makes the struct value itself not comparable with ==.
// Isotopes is never mutated after interning.
type Element struct {
	Symbol      string
	Name        string
	NominalMass int
	Mono        float64 // monoisotopic mass, Da
	Isotopes    []Isotope
}

// String implements fmt.Stringer, returning the bare symbol (Hill-order
// rendering of a full formula lives in package formula).
func (e Element) String() string { return e.Symbol }

// table interns every known Element by symbol. Populated once at init
// and never written again: safe for unsynchronized concurrent reads.
var table = map[string]Element{}

func intern(e Element) {
	if _, exists := table[e.Symbol]; exists {
		panic(fmt.Sprintf("elements: duplicate symbol %q", e.Symbol))
	}
	table[e.Symbol] = e
}

// BySymbol returns the interned Element for symbol, or ErrUnknownSymbol.
func BySymbol(symbol string) (Element, error) {
	e, ok := table[symbol]
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}

	return e, nil
}

// MustBySymbol is BySymbol but panics on an unknown symbol; intended for
// package-init-time construction of fixed alphabets (e.g. CHNOPS), never
// for user input.
func MustBySymbol(symbol string) Element {
	e, err := BySymbol(symbol)
	if err != nil {
		panic(err)
	}

	return e
}

// Symbols returns every interned symbol, in a fixed declaration order
// (not map iteration order) so alphabet construction stays deterministic.
func Symbols() []string {
	out := make([]string, len(declarationOrder))
	copy(out, declarationOrder)

	return out
}

var declarationOrder []string

func init() {
	// Organogenic core (CHNOPS) plus common adduct/halogen elements.
	// Monoisotopic masses and natural isotope ratios are standard textbook
	// values (IUPAC); this is the minimal catalog this module carries
	// itself rather than delegating to an external periodic-table service.
	declare(Element{
		Symbol: "H", Name: "Hydrogen", NominalMass: 1, Mono: 1.0078250319,
		Isotopes: []Isotope{
			{NominalMass: 1, Mass: 1.0078250319, Abundance: 0.999885},
			{NominalMass: 2, Mass: 2.0141017780, Abundance: 0.000115},
		},
	})
	declare(Element{
		Symbol: "C", Name: "Carbon", NominalMass: 12, Mono: 12.0000000,
		Isotopes: []Isotope{
			{NominalMass: 12, Mass: 12.0000000, Abundance: 0.9893},
			{NominalMass: 13, Mass: 13.0033548378, Abundance: 0.0107},
		},
	})
	declare(Element{
		Symbol: "N", Name: "Nitrogen", NominalMass: 14, Mono: 14.0030740052,
		Isotopes: []Isotope{
			{NominalMass: 14, Mass: 14.0030740052, Abundance: 0.99636},
			{NominalMass: 15, Mass: 15.0001088984, Abundance: 0.00364},
		},
	})
	declare(Element{
		Symbol: "O", Name: "Oxygen", NominalMass: 16, Mono: 15.9949146221,
		Isotopes: []Isotope{
			{NominalMass: 16, Mass: 15.9949146221, Abundance: 0.99757},
			{NominalMass: 17, Mass: 16.99913150, Abundance: 0.00038},
			{NominalMass: 18, Mass: 17.9991604, Abundance: 0.00205},
		},
	})
	declare(Element{
		Symbol: "P", Name: "Phosphorus", NominalMass: 31, Mono: 30.97376151,
		Isotopes: []Isotope{
			{NominalMass: 31, Mass: 30.97376151, Abundance: 1.0},
		},
	})
	declare(Element{
		Symbol: "S", Name: "Sulfur", NominalMass: 32, Mono: 31.97207069,
		Isotopes: []Isotope{
			{NominalMass: 32, Mass: 31.97207069, Abundance: 0.9499},
			{NominalMass: 33, Mass: 32.97145850, Abundance: 0.0075},
			{NominalMass: 34, Mass: 33.96786683, Abundance: 0.0425},
		},
	})
	declare(Element{
		Symbol: "F", Name: "Fluorine", NominalMass: 19, Mono: 18.99840320,
		Isotopes: []Isotope{{NominalMass: 19, Mass: 18.99840320, Abundance: 1.0}},
	})
	declare(Element{
		Symbol: "Cl", Name: "Chlorine", NominalMass: 35, Mono: 34.96885268,
		Isotopes: []Isotope{
			{NominalMass: 35, Mass: 34.96885268, Abundance: 0.7576},
			{NominalMass: 37, Mass: 36.96590259, Abundance: 0.2424},
		},
	})
	declare(Element{
		Symbol: "Br", Name: "Bromine", NominalMass: 79, Mono: 78.9183376,
		Isotopes: []Isotope{
			{NominalMass: 79, Mass: 78.9183376, Abundance: 0.5069},
			{NominalMass: 81, Mass: 80.9162910, Abundance: 0.4931},
		},
	})
	declare(Element{
		Symbol: "I", Name: "Iodine", NominalMass: 127, Mono: 126.9044719,
		Isotopes: []Isotope{{NominalMass: 127, Mass: 126.9044719, Abundance: 1.0}},
	})
	declare(Element{
		Symbol: "Na", Name: "Sodium", NominalMass: 23, Mono: 22.98976928,
		Isotopes: []Isotope{{NominalMass: 23, Mass: 22.98976928, Abundance: 1.0}},
	})
	declare(Element{
		Symbol: "K", Name: "Potassium", NominalMass: 39, Mono: 38.9637069,
		Isotopes: []Isotope{
			{NominalMass: 39, Mass: 38.9637069, Abundance: 0.932581},
			{NominalMass: 41, Mass: 40.9618260, Abundance: 0.067302},
		},
	})
}

func declare(e Element) {
	declarationOrder = append(declarationOrder, e.Symbol)
	intern(e)
}
