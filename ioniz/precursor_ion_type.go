package ioniz

import (
	"fmt"
	"strings"

	"github.com/msfrag/fragid/formula"
)

// PrecursorIonType is an Ionization plus an optional in-source
// modification: an adduct formula added to the neutral molecule, and/or an
// in-source neutral loss subtracted from it, both applied before the
// Ionization's own mass shift. NeutralToIonMass/IonToNeutralMass account
// for both legs and are exact inverses up to rounding.
type PrecursorIonType struct {
	Ionization Ionization
	Adduct     formula.MolecularFormula // atoms added in-source (beyond the ionization's own AddedAtoms)
	InSourceLoss formula.MolecularFormula // atoms lost in-source
}

// Unknown reports whether this PrecursorIonType carries no confirmed ion
// mode (a bare-charge placeholder awaiting identifyPrecursorAndIonization's
// search over KnownIonModes).
func (p PrecursorIonType) Unknown() bool {
	return p.Ionization.Name == "[M]+" || p.Ionization.Name == "[M]-"
}

// Charge returns the underlying ionization's charge.
func (p PrecursorIonType) Charge() int { return p.Ionization.Charge }

// NeutralToIonMass applies the adduct, in-source loss, and ionization mass
// shift in sequence to neutralFormula, returning the resulting ion m/z.
func (p PrecursorIonType) NeutralToIonMass(neutral formula.MolecularFormula) float64 {
	modified := neutral.Add(p.Adduct)
	if lost, ok := modified.Subtract(p.InSourceLoss); ok {
		modified = lost
	}

	return p.Ionization.NeutralToIonMass(modified)
}

// IonToNeutralMass is the mass-level inverse of NeutralToIonMass: it
// recovers the modified-ion's neutral mass and then removes the adduct /
// restores the in-source loss mass contribution. Because this method
// operates on masses (not formulas), the adduct/loss masses are applied as
// simple mass deltas rather than structural subtraction.
func (p PrecursorIonType) IonToNeutralMass(ionMass float64) float64 {
	modifiedNeutralMass := p.Ionization.IonToNeutralMass(ionMass)

	return modifiedNeutralMass - p.Adduct.Mass() + p.InSourceLoss.Mass()
}

// String renders a human-readable ion-type label, e.g. "[M+H]+" or
// "[M+Na-H2O+H]+" when an adduct/in-source loss is present.
func (p PrecursorIonType) String() string {
	if p.Adduct.IsEmpty() && p.InSourceLoss.IsEmpty() {
		return p.Ionization.Name
	}
	var b strings.Builder
	b.WriteString("[M")
	if !p.Adduct.IsEmpty() {
		b.WriteString("+")
		b.WriteString(p.Adduct.String())
	}
	if !p.InSourceLoss.IsEmpty() {
		b.WriteString("-")
		b.WriteString(p.InSourceLoss.String())
	}
	b.WriteString(strings.TrimPrefix(p.Ionization.Name, "[M"))

	return b.String()
}

// FromIonization wraps a bare Ionization with no adduct/in-source loss.
func FromIonization(i Ionization) PrecursorIonType {
	return PrecursorIonType{Ionization: i}
}

// Parse recognizes a small set of canonical ion-type names used by this
// module's tests and CLI: "[M+H]+", "[M-H]-", "[M]+", "[M]-".
func Parse(name string) (PrecursorIonType, error) {
	switch name {
	case "[M+H]+":
		return FromIonization(Protonation()), nil
	case "[M-H]-":
		return FromIonization(Deprotonation()), nil
	case "[M]+":
		return FromIonization(UnknownPositive()), nil
	case "[M]-":
		return FromIonization(UnknownNegative()), nil
	default:
		return PrecursorIonType{}, fmt.Errorf("%w: %q", ErrUnknownIonization, name)
	}
}
