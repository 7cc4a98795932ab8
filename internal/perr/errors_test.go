package perr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("empty input")
	assert.Equal(t, "illegal argument: empty input", err.Error())
}

func TestLexErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewLexError(3, 1, 4, "bad escape")
	err.Underlying = cause
	assert.ErrorIs(t, err, cause)
}

func TestArenaFullError(t *testing.T) {
	err := NewArenaFullError(100, 100)
	assert.Contains(t, err.Error(), "arena full")
}

func TestInvalidNodeIDError(t *testing.T) {
	err := NewInvalidNodeIDError(-1, 0, 10)
	assert.Contains(t, err.Error(), "invalid node id -1")
}
