package xerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	assert.Nil(t, Unwrap(nil))
	assert.Equal(t, []error{first}, Unwrap(first))
	assert.Equal(t, []error{first, second}, Unwrap(errors.Join(first, second)))
}
