package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrNop_ReturnsGivenLoggerWhenNonNil(t *testing.T) {
	l := NewNop()
	assert.Same(t, l, OrNop(l))
}

func TestOrNop_ReturnsNopLoggerWhenNil(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}

func TestNewProduction_BuildsWithoutError(t *testing.T) {
	l, err := NewProduction()
	assert.NoError(t, err)
	assert.NotNil(t, l)
}
