package workspace

import "errors"

var (
	// ErrNoResults is returned when Writer.WriteRun is asked to persist an
	// empty result set.
	ErrNoResults = errors.New("workspace: no results to write")

	// ErrNotFound is returned when RunIndex.Run finds no matching row.
	ErrNotFound = errors.New("workspace: run not found")
)
