package workspace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/msfrag/fragid/fgraph"
	"github.com/msfrag/fragid/pipeline"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
)

// Writer persists pipeline output under a Layout's root, following
// ChrisMcGann/DBKey's writer shape: open/create on construction, typed
// Write methods per record kind, no implicit flush ordering between them.
type Writer struct {
	layout Layout
}

// NewWriter returns a Writer rooted at root, creating the root directory
// if it does not already exist.
func NewWriter(root string) (*Writer, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("workspace: creating root: %w", err)
	}

	return &Writer{layout: NewLayout(root)}, nil
}

// yamlProfile is profile.MeasurementProfile's on-disk projection: only the
// fields §6.3 names as configurable, not a full internal-state dump.
type yamlProfile struct {
	TreeSizeScore          float64 `yaml:"treeSizeScore"`
	IsotopePatternHandling string  `yaml:"isotopePatternHandling"`
	Parallelism            int     `yaml:"parallelism"`
	Recalibration          struct {
		PPM          float64 `yaml:"ppm"`
		Abs          float64 `yaml:"abs"`
		MinPeaks     int     `yaml:"minPeaks"`
		MinIntensity float64 `yaml:"minIntensity"`
	} `yaml:"recalibration"`
	MS1PPM float64 `yaml:"ms1Ppm"`
	MS2PPM float64 `yaml:"ms2Ppm"`
}

// WriteProfile writes profiles/<name>/profile.yaml.
func (w *Writer) WriteProfile(name string, p profile.MeasurementProfile) error {
	path := w.layout.ProfilePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("workspace: creating profile dir: %w", err)
	}

	rec := yamlProfile{
		TreeSizeScore:          p.TreeSizeScore(),
		IsotopePatternHandling: p.IsotopeHandling().String(),
		Parallelism:            p.Parallelism(),
		MS1PPM:                 p.MS1Deviation().PPM,
		MS2PPM:                 p.MS2Deviation().PPM,
	}
	cfg := p.Recalibration()
	rec.Recalibration.PPM = cfg.PPM
	rec.Recalibration.Abs = cfg.Abs
	rec.Recalibration.MinPeaks = cfg.MinPeaks
	rec.Recalibration.MinIntensity = cfg.MinIntensity

	out, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("workspace: marshalling profile: %w", err)
	}

	return os.WriteFile(path, out, 0o644)
}

// WriteExperiment writes ms/<experimentID>.ms, the raw input experiment
// (per §6.2's workspace layout), so a run can be replayed or inspected
// without the original instrument export.
func (w *Writer) WriteExperiment(exp spectrum.Ms2Experiment) error {
	path := w.layout.ExperimentPath(exp.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("workspace: creating ms dir: %w", err)
	}

	return spectrum.WriteMSFile(path, exp)
}

// WriteRun persists one Identify call's results for experimentID: per-rank
// tree JSON/DOT files, a summary.csv, and a scores/<id>.csv.
func (w *Writer) WriteRun(experimentID string, results []pipeline.IdentificationResult) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	treesDir := w.layout.TreesDir(experimentID)
	if err := os.MkdirAll(treesDir, 0o755); err != nil {
		return fmt.Errorf("workspace: creating trees dir: %w", err)
	}

	for _, r := range results {
		name := r.Formula.String()
		if err := writeTreeJSON(w.layout.TreeJSONPath(experimentID, r.Rank, name), r); err != nil {
			return err
		}
		if err := writeTreeDot(w.layout.TreeDotPath(experimentID, r.Rank, name), r); err != nil {
			return err
		}
	}

	if err := writeSummaryCSV(w.layout.SummaryPath(experimentID), results); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.layout.ScoresPath(experimentID)), 0o755); err != nil {
		return fmt.Errorf("workspace: creating scores dir: %w", err)
	}

	return writeScoresCSV(w.layout.ScoresPath(experimentID), results)
}

// nodeDoc and edgeDoc are fgraph.Node/Edge's JSON projections: formulas
// render as their canonical string, since formula.MolecularFormula keeps
// its element counts unexported and has no MarshalJSON of its own.
type nodeDoc struct {
	ID        string  `json:"id"`
	PeakIndex int     `json:"peakIndex"`
	Formula   string  `json:"formula"`
	MZ        float64 `json:"mz"`
	Intensity float64 `json:"intensity"`
}

type edgeDoc struct {
	ID     string  `json:"id"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

type treeDoc struct {
	Formula      string    `json:"formula"`
	IonType      string    `json:"ionType"`
	Rank         int       `json:"rank"`
	Score        float64   `json:"score"`
	Optimal      bool      `json:"optimal"`
	Recalibrated bool      `json:"recalibrated"`
	Nodes        []nodeDoc `json:"nodes"`
	Edges        []edgeDoc `json:"edges"`
}

func writeTreeJSON(path string, r pipeline.IdentificationResult) error {
	nodes := make([]nodeDoc, len(r.Tree.Nodes))
	for i, n := range r.Tree.Nodes {
		nodes[i] = nodeDoc{ID: n.ID, PeakIndex: n.PeakIndex, Formula: n.Formula.String(), MZ: n.MZ, Intensity: n.Intensity}
	}
	edges := make([]edgeDoc, len(r.Tree.Edges))
	for i, e := range r.Tree.Edges {
		edges[i] = edgeDoc{ID: e.ID, From: e.From, To: e.To, Weight: e.Weight}
	}

	doc := treeDoc{
		Formula:      r.Formula.String(),
		IonType:      r.IonType.String(),
		Rank:         r.Rank,
		Score:        r.Score,
		Optimal:      r.Optimal,
		Recalibrated: r.Recalibrated,
		Nodes:        nodes,
		Edges:        edges,
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("workspace: marshalling tree %s: %w", doc.Formula, err)
	}

	return os.WriteFile(path, out, 0o644)
}

// writeTreeDot renders a Graphviz "digraph" of the tree: one node per
// fragment, labeled with its formula and m/z, one edge per chosen loss.
func writeTreeDot(path string, r pipeline.IdentificationResult) error {
	var buf []byte
	buf = append(buf, fmt.Sprintf("digraph %s {\n", sanitizeID(r.Formula.String()))...)
	for _, n := range r.Tree.Nodes {
		label := n.Formula.String()
		if n.ID == fgraph.RootID {
			label = "root"
		}
		buf = append(buf, fmt.Sprintf(
			"  %q [label=%q];\n", n.ID, fmt.Sprintf("%s\\nm/z=%.4f", label, n.MZ),
		)...)
	}
	for _, e := range r.Tree.Edges {
		buf = append(buf, fmt.Sprintf("  %q -> %q [label=%q];\n", e.From, e.To, strconv.FormatFloat(e.Weight, 'f', 3, 64))...)
	}
	buf = append(buf, []byte("}\n")...)

	return os.WriteFile(path, buf, 0o644)
}

func sanitizeID(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '+' || r == '-' || r == ' ' {
			out = append(out, '_')

			continue
		}
		out = append(out, r)
	}

	return string(out)
}

func writeSummaryCSV(path string, results []pipeline.IdentificationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("workspace: creating summary: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	_ = cw.Write([]string{"rank", "formula", "ionType", "score", "explainedIntensityRatio", "numberOfVertices", "optimal", "recalibrated"})
	for _, r := range results {
		_ = cw.Write([]string{
			strconv.Itoa(r.Rank),
			r.Formula.String(),
			r.IonType.String(),
			strconv.FormatFloat(r.Score, 'f', 6, 64),
			strconv.FormatFloat(r.ExplainedIntensityRatio, 'f', 6, 64),
			strconv.Itoa(r.NumberOfVertices),
			strconv.FormatBool(r.Optimal),
			strconv.FormatBool(r.Recalibrated),
		})
	}
	cw.Flush()

	return cw.Error()
}

func writeScoresCSV(path string, results []pipeline.IdentificationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("workspace: creating scores: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	_ = cw.Write([]string{"formula", "score", "isotopeScore"})
	for _, r := range results {
		_ = cw.Write([]string{r.Formula.String(), strconv.FormatFloat(r.Score, 'f', 6, 64), strconv.FormatFloat(r.IsotopeScore, 'f', 6, 64)})
	}
	cw.Flush()

	return cw.Error()
}
