package preprocess

import (
	"sort"

	"github.com/msfrag/fragid/formula"
	"github.com/msfrag/fragid/spectrum"
)

// MergePolicy selects how colliding peaks' intensities are combined.
type MergePolicy int

const (
	// MergeSum adds colliding intensities (default — preserves total ion
	// current across merged replicate peaks).
	MergeSum MergePolicy = iota

	// MergeAverage averages colliding intensities.
	MergeAverage
)

// Merge bins peaks whose m/z lie within dev of a running bin centroid and
// combines their intensities per policy, returning a new, m/z-sorted peak
// list. The input slice is not modified.
func Merge(peaks []spectrum.Peak, dev formula.Deviation, policy MergePolicy) []spectrum.Peak {
	if len(peaks) == 0 {
		return nil
	}
	sorted := make([]spectrum.Peak, len(peaks))
	copy(sorted, peaks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MZ < sorted[j].MZ })

	var out []spectrum.Peak
	i := 0
	for i < len(sorted) {
		sumMZ := sorted[i].MZ
		sumIntensity := sorted[i].Intensity
		count := 1
		centroid := sorted[i].MZ
		j := i + 1
		for j < len(sorted) && dev.Contains(sorted[j].MZ, centroid) {
			sumMZ += sorted[j].MZ
			sumIntensity += sorted[j].Intensity
			count++
			centroid = sumMZ / float64(count) // recentre as the bin grows
			j++
		}
		intensity := sumIntensity
		if policy == MergeAverage {
			intensity = sumIntensity / float64(count)
		}
		out = append(out, spectrum.Peak{MZ: sumMZ / float64(count), Intensity: intensity})
		i = j
	}

	return out
}
