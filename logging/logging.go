package logging

import (
	"go.uber.org/zap"
)

// NewProduction returns a JSON-encoded, info-level *zap.SugaredLogger
// suitable for cmd/fragid's default output.
func NewProduction() (*zap.SugaredLogger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return z.Sugar(), nil
}

// NewNop returns a *zap.SugaredLogger that discards everything it's given.
// Used as the default when a caller supplies no logger.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns l unchanged if non-nil, else a no-op logger.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return NewNop()
	}

	return l
}
