package pte

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/stretchr/testify/assert"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "solution.go")
	if err := os.WriteFile(p, []byte("package main\n\n"+src+"\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		rows      string
		input     string
		expect    []string
		expectNot []string
	}{
		{
			name:  "fixed rows, two cases",
			src:   "func solve(n int, name string, v []int) int { return n }",
			rows:  "2",
			input: "3 bob\n1 2 3\n4 5\n6\n",
			expect: []string{
				"Rows: 2",
				"Case 1", `"bob"`, "[1 2 3]",
				"Case 2", `"5"`, "[6]",
				"Goodbye",
			},
			expectNot: []string{"Case 3", "No input left"},
		},
		{
			name:      "quit ends the session",
			src:       "func solve(a int) int { return a }",
			rows:      "line",
			input:     "QUIT\n1\n",
			expect:    []string{"Goodbye"},
			expectNot: []string{"Case 1"},
		},
		{
			name:   "absent parameter is reported",
			src:    "func solve(a int, b int) int { return a + b }",
			rows:   "line",
			input:  "7\n",
			expect: []string{"Case 1", `No input left for parameter "b"`},
		},
		{
			name:   "rows from parameter",
			src:    "func solve(n int, v [][]int) int { return n }",
			rows:   "n",
			input:  "2\n1 2\n3 4\n",
			expect: []string{"Case 1", "[[1 2] [3 4]]"},
		},
		{
			name:   "bad header keeps going",
			src:    "func solve(v [][]int) int { return 0 }",
			rows:   "in0",
			input:  "x\n1\n9\n",
			expect: []string{"no row count in header line", "Case 1", "[[1] [9]]", "Goodbye"},
		},
		{
			name:   "until blank line",
			src:    "func solve(words []string) int { return 0 }",
			rows:   "blank",
			input:  "a b\nc\n\nd\n",
			expect: []string{"Case 1", `["a" "b"]`, "Case 2", `["d"]`},
		},
		{
			name:   "int32 shown as numbers, runes as characters",
			src:    "func solve(n int32, c rune) int { return 0 }",
			rows:   "line",
			input:  "97 a\n",
			expect: []string{"97", "'a'"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			path := writeSource(t, tc.src)
			var out bytes.Buffer

			eng, err := New(strings.NewReader(tc.input), &out, path, "solve", tc.rows, true, nil)
			if !assert.NoError(err) {
				return
			}

			err = eng.RunUntilQuit()
			assert.NoError(err)
			assert.NoError(eng.Close())

			actual := out.String()
			for _, s := range tc.expect {
				assert.Contains(actual, s)
			}
			for _, s := range tc.expectNot {
				assert.NotContains(actual, s)
			}
		})
	}
}

func Test_New_errors(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		funcName  string
		rows      string
		expectErr string
	}{
		{
			name:      "missing function",
			src:       "func solve(a int) int { return a }",
			funcName:  "other",
			expectErr: "There is no function named other",
		},
		{
			name:      "row parameter missing",
			src:       "func solve(a int) int { return a }",
			funcName:  "solve",
			rows:      "n",
			expectErr: "Row count parameter n is not a parameter of solve",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			path := writeSource(t, tc.src)

			_, err := New(strings.NewReader(""), &bytes.Buffer{}, path, tc.funcName, tc.rows, true, nil)

			if assert.Error(err) {
				assert.Equal(tc.expectErr, pteerrors.Message(err))
			}
		})
	}
}

func Test_asCount(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expect   int
		expectOK bool
	}{
		{name: "int", input: 3, expect: 3, expectOK: true},
		{name: "uint8", input: uint8(200), expect: 200, expectOK: true},
		{name: "negative", input: int64(-4), expect: 0, expectOK: true},
		{name: "not an integer", input: "3", expect: 0, expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, ok := asCount(tc.input)

			assert.Equal(tc.expect, actual)
			assert.Equal(tc.expectOK, ok)
		})
	}
}

func Test_formatValue(t *testing.T) {
	testCases := []struct {
		name   string
		elem   string
		input  any
		expect string
	}{
		{name: "int32 stays a number", elem: "int32", input: int32(97), expect: "97"},
		{name: "rune is a character", elem: "rune", input: 'a', expect: "'a'"},
		{name: "int32 slice", elem: "int32", input: []int32{120, 121}, expect: "[120 121]"},
		{name: "rune slice", elem: "rune", input: []rune("xy"), expect: "['x' 'y']"},
		{name: "uint8 stays a number", elem: "uint8", input: uint8(122), expect: "122"},
		{name: "byte is a character", elem: "byte", input: byte('z'), expect: "'z'"},
		{name: "empty string", elem: "string", input: "", expect: `""`},
		{name: "string grid", elem: "string", input: [][]string{{"a"}, {"b", "c"}}, expect: `[["a"] ["b" "c"]]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, formatValue(tc.elem, tc.input))
		})
	}
}
