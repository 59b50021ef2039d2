package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BinderFor(t *testing.T) {
	testCases := []struct {
		name     string
		elem     string
		shape    Shape
		input    string
		expect   any
		expectOK bool
	}{
		{
			name:     "int scalar",
			elem:     "int",
			shape:    ShapeScalar,
			input:    "\n42 7",
			expect:   42,
			expectOK: true,
		},
		{
			name:     "float slice",
			elem:     "float64",
			shape:    ShapeSlice,
			input:    "1.5 x 2",
			expect:   []float64{1.5, 2},
			expectOK: true,
		},
		{
			name:     "string grid",
			elem:     "string",
			shape:    ShapeGrid,
			input:    "a b\n\nc",
			expect:   [][]string{{"a", "b"}, {"c"}},
			expectOK: true,
		},
		{
			name:     "byte slice",
			elem:     "byte",
			shape:    ShapeSlice,
			input:    "a bc d",
			expect:   []byte{'a', 'd'},
			expectOK: true,
		},
		{
			name:     "uint scalar rejects negative",
			elem:     "uint",
			shape:    ShapeScalar,
			input:    "-1",
			expect:   uint(0),
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			b, ok := BinderFor(tc.elem, tc.shape)
			if !assert.True(ok) {
				return
			}
			assert.Equal(tc.shape, b.Shape())

			actual, ok := b.Bind(New(tc.input))

			assert.Equal(tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(tc.expect, actual)
			}
		})
	}
}

func Test_BinderFor_unknown(t *testing.T) {
	_, ok := BinderFor("complex128", ShapeScalar)
	assert.False(t, ok)
}

func Test_ParserNames_matchBinders(t *testing.T) {
	assert := assert.New(t)

	assert.Len(ParserNames, len(elements))
	for name := range elements {
		assert.Contains(ParserNames, name)
	}
}

func Test_Rune(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    rune
		expectErr bool
	}{
		{name: "ascii", input: "a", expect: 'a'},
		{name: "multibyte", input: "é", expect: 'é'},
		{name: "empty", input: "", expectErr: true},
		{name: "two runes", input: "ab", expectErr: true},
		{name: "invalid utf-8", input: "\xff", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Rune(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_IntegerParsers_rejectOutOfRange(t *testing.T) {
	assert := assert.New(t)

	_, err := Int8("128")
	assert.Error(err)
	_, err = Uint8("256")
	assert.Error(err)
	v, err := Int16("-32768")
	assert.NoError(err)
	assert.Equal(int16(-32768), v)
}
