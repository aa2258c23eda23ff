package workspace

import (
	"fmt"
	"path/filepath"
)

// Layout resolves the on-disk paths for one workspace root. Every method is
// a pure path computation; nothing here touches the filesystem.
type Layout struct {
	Root string
}

// NewLayout returns a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// ProfilePath returns profiles/<name>/profile.yaml.
func (l Layout) ProfilePath(name string) string {
	return filepath.Join(l.Root, "profiles", name, "profile.yaml")
}

// ExperimentPath returns ms/<experimentID>.ms.
func (l Layout) ExperimentPath(experimentID string) string {
	return filepath.Join(l.Root, "ms", experimentID+".ms")
}

// ScoresPath returns scores/<experimentID>.csv.
func (l Layout) ScoresPath(experimentID string) string {
	return filepath.Join(l.Root, "scores", experimentID+".csv")
}

// RunDir returns <experimentID>/, the per-run output directory.
func (l Layout) RunDir(experimentID string) string {
	return filepath.Join(l.Root, experimentID)
}

// TreesDir returns <experimentID>/trees/.
func (l Layout) TreesDir(experimentID string) string {
	return filepath.Join(l.RunDir(experimentID), "trees")
}

// TreeJSONPath returns <experimentID>/trees/<rank>_<formula>.json.
func (l Layout) TreeJSONPath(experimentID string, rank int, formula string) string {
	return filepath.Join(l.TreesDir(experimentID), fmt.Sprintf("%d_%s.json", rank, formula))
}

// TreeDotPath returns <experimentID>/trees/<rank>_<formula>.dot.
func (l Layout) TreeDotPath(experimentID string, rank int, formula string) string {
	return filepath.Join(l.TreesDir(experimentID), fmt.Sprintf("%d_%s.dot", rank, formula))
}

// SummaryPath returns <experimentID>/summary.csv.
func (l Layout) SummaryPath(experimentID string) string {
	return filepath.Join(l.RunDir(experimentID), "summary.csv")
}

// RunDBPath returns runs.db, the sqlite run index file.
func (l Layout) RunDBPath() string {
	return filepath.Join(l.Root, "runs.db")
}
