package recal

import "errors"

// ErrInsufficientPoints is returned when fewer calibration points are
// supplied than the profile's RecalibrationConfig.MinPeaks requires
// (Recalibrate), or fewer than two (FitMedianSlope).
var ErrInsufficientPoints = errors.New("recal: insufficient calibration points")

// ErrDegenerateFit is returned when every calibration point shares the
// same observed mass, making a slope estimate undefined.
var ErrDegenerateFit = errors.New("recal: degenerate calibration point set")
