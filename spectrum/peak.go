package spectrum

import (
	"fmt"
	"math"
	"sort"
)

// Peak is a single (m/z, intensity) measurement. Intensity is non-negative
// and scale-free until Spectrum.Normalized is called.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Spectrum is an ordered list of Peaks from a single scan.
type Spectrum struct {
	Peaks []Peak
}

// Wrap builds a Spectrum from parallel mz/intensity slices (the
// wrapSpectrum factory helper from §6.1). Returns ErrInvalidPeak if the
// slices differ in length or contain a non-finite/non-positive m/z or a
// negative intensity.
func Wrap(mz, intensity []float64) (Spectrum, error) {
	if len(mz) != len(intensity) {
		return Spectrum{}, fmt.Errorf("%w: mismatched slice lengths %d/%d", ErrInvalidPeak, len(mz), len(intensity))
	}
	peaks := make([]Peak, len(mz))
	for i := range mz {
		if math.IsNaN(mz[i]) || math.IsInf(mz[i], 0) || mz[i] <= 0 {
			return Spectrum{}, fmt.Errorf("%w: peak %d m/z=%v", ErrInvalidPeak, i, mz[i])
		}
		if math.IsNaN(intensity[i]) || intensity[i] < 0 {
			return Spectrum{}, fmt.Errorf("%w: peak %d intensity=%v", ErrInvalidPeak, i, intensity[i])
		}
		peaks[i] = Peak{MZ: mz[i], Intensity: intensity[i]}
	}
	s := Spectrum{Peaks: peaks}
	s.SortPeaks()

	return s, nil
}

// SortPeaks orders Peaks ascending by m/z in place.
func (s *Spectrum) SortPeaks() {
	sort.Slice(s.Peaks, func(i, j int) bool { return s.Peaks[i].MZ < s.Peaks[j].MZ })
}

// BasePeakIntensity returns the maximum intensity in the spectrum, or 0 for
// an empty spectrum.
func (s Spectrum) BasePeakIntensity() float64 {
	var max float64
	for _, p := range s.Peaks {
		if p.Intensity > max {
			max = p.Intensity
		}
	}

	return max
}

// Normalized returns a copy of s with every intensity divided by the base
// peak intensity (relative-to-base-peak normalization, scale [0,1]).
// A spectrum whose base peak intensity is 0 is returned unchanged.
func (s Spectrum) Normalized() Spectrum {
	base := s.BasePeakIntensity()
	if base <= 0 {
		return s
	}
	out := Spectrum{Peaks: make([]Peak, len(s.Peaks))}
	for i, p := range s.Peaks {
		out.Peaks[i] = Peak{MZ: p.MZ, Intensity: p.Intensity / base}
	}

	return out
}

// TotalIntensity sums every peak's intensity.
func (s Spectrum) TotalIntensity() float64 {
	var total float64
	for _, p := range s.Peaks {
		total += p.Intensity
	}

	return total
}
