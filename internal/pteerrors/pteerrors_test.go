package pteerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Message(t *testing.T) {
	base := errors.New("base")

	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "plain error",
			err:    base,
			expect: "base",
		},
		{
			name:   "user error",
			err:    Userf("parameter %q has no type", "a"),
			expect: `parameter "a" has no type`,
		},
		{
			name:   "wrapped user error",
			err:    fmt.Errorf("parse signature: %w", Userf("bad type")),
			expect: "bad type",
		},
		{
			name:   "user error wrapping a user error",
			err:    WrapUserf(Userf("inner"), "outer"),
			expect: "outer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Message(tc.err))
		})
	}
}

func Test_WrapUserf(t *testing.T) {
	assert := assert.New(t)

	base := errors.New("base")
	err := WrapUserf(base, "could not read %s", "solve.go")

	assert.ErrorIs(err, base)
	assert.Equal("could not read solve.go", Message(err))
	assert.Equal("could not read solve.go: base", err.Error())
}
