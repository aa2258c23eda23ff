package profile

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/msfrag/fragid/formula"
)

// Named instrument presets, per §6.3: qtof uses 10ppm/5e-4Da, Orbitrap and
// FTICR use 5ppm.
var instrumentPresets = map[string]formula.Deviation{
	"qtof":     formula.QTOFDeviation,
	"orbitrap": formula.OrbitrapDeviation,
	"fticr":    formula.OrbitrapDeviation,
}

// Load reads a YAML/JSON/TOML profile file (any format viper supports) from
// path and overlays it onto Default(). Recognized keys mirror §6.3:
//
//	instrument: qtof | orbitrap | fticr
//	formulaConstraints: "CHNOPS[20]"
//	treeSizeScore: 0.0
//	isotopePatternHandling: omit | filter | score
//	parallelism: 3
//	recalibration.ppm / .abs / .minPeaks / .minIntensity
//
// Missing keys keep their Default() value; an unreadable file or malformed
// value is reported immediately (InvalidInput-style, §7).
func Load(path string) (MeasurementProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return MeasurementProfile{}, fmt.Errorf("profile: reading %s: %w", path, err)
	}

	p := Default()

	if instrument := v.GetString("instrument"); instrument != "" {
		dev, ok := instrumentPresets[instrument]
		if !ok {
			return MeasurementProfile{}, fmt.Errorf("profile: unknown instrument preset %q", instrument)
		}
		p.ms1Deviation = dev
		p.ms2Deviation = dev
	}

	if spec := v.GetString("formulaConstraints"); spec != "" {
		c, err := formula.ParseConstraints(spec)
		if err != nil {
			return MeasurementProfile{}, fmt.Errorf("profile: formulaConstraints: %w", err)
		}
		p.constraints = c
	}

	if v.IsSet("treeSizeScore") {
		p.treeSizeScore = v.GetFloat64("treeSizeScore")
	}

	if handling := v.GetString("isotopePatternHandling"); handling != "" {
		switch handling {
		case "omit":
			p.isotopeHandling = IsotopeOmit
		case "filter":
			p.isotopeHandling = IsotopeFilter
		case "score":
			p.isotopeHandling = IsotopeScore
		default:
			return MeasurementProfile{}, fmt.Errorf("profile: unknown isotopePatternHandling %q", handling)
		}
	}

	if v.IsSet("parallelism") {
		p.parallelism = v.GetInt("parallelism")
		if p.parallelism <= 0 {
			p.parallelism = 3
		}
	}

	recal := p.recalibration
	if v.IsSet("recalibration.ppm") {
		recal.PPM = v.GetFloat64("recalibration.ppm")
	}
	if v.IsSet("recalibration.abs") {
		recal.Abs = v.GetFloat64("recalibration.abs")
	}
	if v.IsSet("recalibration.minPeaks") {
		recal.MinPeaks = v.GetInt("recalibration.minPeaks")
	}
	if v.IsSet("recalibration.minIntensity") {
		recal.MinIntensity = v.GetFloat64("recalibration.minIntensity")
	}
	p.recalibration = recal

	return p, nil
}
