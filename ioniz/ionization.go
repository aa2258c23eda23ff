package ioniz

import (
	"errors"
	"fmt"

	"github.com/msfrag/fragid/formula"
)

// ErrUnsupportedCharge is returned when a charge state outside ±1 is
// requested — the spec explicitly scopes multiply-charged precursors out.
var ErrUnsupportedCharge = errors.New("ioniz: unsupported charge state (only +-1 supported)")

// ErrUnknownIonization is returned by Parse for unrecognized ionization names.
var ErrUnknownIonization = errors.New("ioniz: unknown ionization name")

const protonMass = 1.00727646688

// Ionization is a charge plus the small-mass adjustment that charge carries
// (protonation, deprotonation, or an adduct atom). Immutable value type.
type Ionization struct {
	Name       string
	Charge     int     // +1 or -1
	MassShift  float64 // Da added to the neutral mass before dividing by |charge|
	AddedAtoms formula.MolecularFormula
}

// NewIonization validates charge and constructs an Ionization.
func NewIonization(name string, charge int, massShift float64, added formula.MolecularFormula) (Ionization, error) {
	if charge != 1 && charge != -1 {
		return Ionization{}, fmt.Errorf("%w: charge=%d", ErrUnsupportedCharge, charge)
	}

	return Ionization{Name: name, Charge: charge, MassShift: massShift, AddedAtoms: added}, nil
}

// Protonation is [M+H]+.
func Protonation() Ionization {
	i, _ := NewIonization("[M+H]+", 1, protonMass, formula.Of("H", 1))

	return i
}

// Deprotonation is [M-H]-.
func Deprotonation() Ionization {
	i, _ := NewIonization("[M-H]-", -1, -protonMass, formula.MolecularFormula{})

	return i
}

// UnknownPositive / UnknownNegative represent "unknown ionization" at a
// known charge: the bare-charge case with no adduct atoms, mass shift equal
// to a single electron mass (removed for [M]+, added for [M]-). Used when the
// experiment carries a charge but no confirmed ion mode.
func UnknownPositive() Ionization {
	i, _ := NewIonization("[M]+", 1, -electronMass(), formula.MolecularFormula{})

	return i
}

func UnknownNegative() Ionization {
	i, _ := NewIonization("[M]-", -1, electronMass(), formula.MolecularFormula{})

	return i
}

func electronMass() float64 { return 0.00054857990946 }

// NeutralToIonMass converts a neutral formula's mass into the m/z observed
// for this ionization: (neutralMass + MassShift) / |Charge|.
func (i Ionization) NeutralToIonMass(f formula.MolecularFormula) float64 {
	return (f.Mass() + i.MassShift) / absInt(i.Charge)
}

// IonToNeutralMass is the inverse of NeutralToIonMass on a raw mass value
// (not a formula): neutralMass = ionMass*|Charge| - MassShift.
func (i Ionization) IonToNeutralMass(ionMass float64) float64 {
	return ionMass*absInt(i.Charge) - i.MassShift
}

func absInt(n int) float64 {
	if n < 0 {
		return float64(-n)
	}

	return float64(n)
}

// KnownIonModes lists every Ionization this module recognizes for a given
// charge, used by identifyPrecursorAndIonization's ion-mode search.
func KnownIonModes(charge int) []Ionization {
	switch charge {
	case 1:
		return []Ionization{Protonation(), UnknownPositive()}
	case -1:
		return []Ionization{Deprotonation(), UnknownNegative()}
	default:
		return nil
	}
}
