package spectrum

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/msfrag/fragid/ioniz"
)

// msFileDoc is the on-disk ".ms" projection of an Ms2Experiment: plain
// JSON, one file per experiment, read by cmd/fragid and written by
// workspace.Writer. KnownFormula and ProfileOverride are omitted — a
// stored experiment is raw instrument data, not a pre-computed answer or a
// profile fork.
type msFileDoc struct {
	ID               string     `json:"id"`
	MS1              *Spectrum  `json:"ms1,omitempty"`
	MS2              []Spectrum `json:"ms2"`
	IonMass          float64    `json:"ionMass"`
	PrecursorIonType string     `json:"precursorIonType,omitempty"`
}

// WriteMSFile serializes exp to path in the ".ms" JSON format. Only the
// four canonical ion-type names ioniz.Parse recognizes round-trip through
// PrecursorIonType; an adduct-bearing ion type is written by its String()
// label but will come back unresolved (Ionization.Name == "") from
// ReadMSFile, since ioniz.Parse has no adduct grammar to invert it with.
func WriteMSFile(path string, exp Ms2Experiment) error {
	doc := msFileDoc{
		ID:      exp.ID,
		MS1:     exp.MS1,
		MS2:     exp.MS2,
		IonMass: exp.IonMass,
	}
	if exp.PrecursorIonType.Ionization.Name != "" {
		doc.PrecursorIonType = exp.PrecursorIonType.String()
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("spectrum: marshalling %s: %w", path, err)
	}

	return os.WriteFile(path, out, 0o644)
}

// ReadMSFile parses a ".ms" JSON file into an Ms2Experiment.
func ReadMSFile(path string) (Ms2Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ms2Experiment{}, fmt.Errorf("spectrum: reading %s: %w", path, err)
	}

	var doc msFileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Ms2Experiment{}, fmt.Errorf("spectrum: parsing %s: %w", path, err)
	}

	exp := Ms2Experiment{ID: doc.ID, MS1: doc.MS1, MS2: doc.MS2, IonMass: doc.IonMass}

	if doc.PrecursorIonType != "" {
		ionType, err := ioniz.Parse(doc.PrecursorIonType)
		if err == nil {
			exp.PrecursorIonType = ionType
		}
	}

	return exp, nil
}
