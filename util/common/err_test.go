package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine())
	assert.NoError(t, Combine(nil, nil))

	err1 := errors.New("first")
	err2 := errors.New("second")
	combined := Combine(err1, nil, err2)
	assert.ErrorIs(t, combined, err1)
	assert.ErrorIs(t, combined, err2)
}

func TestRecoverSwallowsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("")
		panic("boom")
	})
}
