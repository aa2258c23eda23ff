package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msfrag/fragid/ioniz"
	"github.com/msfrag/fragid/profile"
	"github.com/msfrag/fragid/spectrum"
)

func TestBuild_RejectsEmptyMS2(t *testing.T) {
	_, err := spectrum.Build("exp1", nil, nil, 100.0, ioniz.FromIonization(ioniz.Protonation()))
	assert.ErrorIs(t, err, spectrum.ErrNoMS2)
}

func TestBuild_RejectsInvalidPeakInMS2(t *testing.T) {
	ms2 := []spectrum.Spectrum{{Peaks: []spectrum.Peak{{MZ: -1, Intensity: 1}}}}
	_, err := spectrum.Build("exp1", nil, ms2, 100.0, ioniz.FromIonization(ioniz.Protonation()))
	assert.ErrorIs(t, err, spectrum.ErrInvalidPeak)
}

func TestBuild_SucceedsWithValidMS2(t *testing.T) {
	ms2 := []spectrum.Spectrum{{Peaks: []spectrum.Peak{{MZ: 50.0, Intensity: 10}}}}
	exp, err := spectrum.Build("exp1", nil, ms2, 100.0, ioniz.FromIonization(ioniz.Protonation()))
	require.NoError(t, err)
	assert.Equal(t, "exp1", exp.ID)
	assert.Equal(t, 100.0, exp.IonMass)
}

func TestValidate_RequiresIonMassOrMS1(t *testing.T) {
	exp := spectrum.Ms2Experiment{MS2: []spectrum.Spectrum{{Peaks: []spectrum.Peak{{MZ: 1, Intensity: 1}}}}}
	assert.ErrorIs(t, exp.Validate(), spectrum.ErrMissingPrecursor)

	exp.IonMass = 100.0
	assert.NoError(t, exp.Validate())
}

func TestValidate_RequiresAtLeastOneMS2Spectrum(t *testing.T) {
	exp := spectrum.Ms2Experiment{IonMass: 100.0}
	assert.ErrorIs(t, exp.Validate(), spectrum.ErrNoMS2)
}

func TestEffectiveProfile_PrefersOverrideWhenSet(t *testing.T) {
	base := profile.Default()
	override := base.WithTreeSizeScore(2.0)
	exp := spectrum.Ms2Experiment{ProfileOverride: &override}
	assert.Equal(t, 2.0, exp.EffectiveProfile(base).TreeSizeScore())

	exp2 := spectrum.Ms2Experiment{}
	assert.Equal(t, base.TreeSizeScore(), exp2.EffectiveProfile(base).TreeSizeScore())
}

func TestMergedMS2Peaks_ConcatenatesEverySpectrum(t *testing.T) {
	exp := spectrum.Ms2Experiment{MS2: []spectrum.Spectrum{
		{Peaks: []spectrum.Peak{{MZ: 1, Intensity: 1}}},
		{Peaks: []spectrum.Peak{{MZ: 2, Intensity: 2}, {MZ: 3, Intensity: 3}}},
	}}
	assert.Len(t, exp.MergedMS2Peaks(), 3)
}
