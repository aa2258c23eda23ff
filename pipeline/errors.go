package pipeline

import "errors"

// ErrAmbiguousPrecursor is returned when experiment.IonMass is zero and
// MS1 analysis yields zero or more than one positive-scoring isotope
// pattern to derive it from.
var ErrAmbiguousPrecursor = errors.New("pipeline: cannot derive unique precursor mass from MS1")

// ErrNoCandidates is returned when no candidate neutral formula survives
// filtering (isotope filter, whitelist, or parent-peak decomposition).
var ErrNoCandidates = errors.New("pipeline: no candidate formulas to search")

// StageError reports which named stage of the pipeline a failure
// originated in, wrapping the underlying cause for errors.Is/As.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return "pipeline: " + e.Stage + ": " + e.Err.Error()
}

// Unwrap supports errors.Is/As against the wrapped cause.
func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}

	return &StageError{Stage: stage, Err: err}
}
