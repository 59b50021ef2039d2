package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func Test_Load(t *testing.T) {
	testCases := []struct {
		name      string
		file      string
		content   string
		expect    Config
		expectErr error
	}{
		{
			name: "toml with string rows",
			file: "pte.toml",
			content: `format = "PTE"
type = "GENERATE"

[generate]
func = "solve"
rows = "in0"
output = "main_gen.go"
`,
			expect: Config{Func: "solve", Rows: "in0", Output: "main_gen.go"},
		},
		{
			name: "toml with integer rows",
			file: "pte.toml",
			content: `format = "pte"
type = "generate"

[generate]
rows = 4
package = "solution"
module = "example.com/rt"
`,
			expect: Config{Rows: "4", Package: "solution", Module: "example.com/rt"},
		},
		{
			name: "yaml",
			file: "pte.yaml",
			content: `format: PTE
type: GENERATE
generate:
  func: solve
  rows: 3
`,
			expect: Config{Func: "solve", Rows: "3"},
		},
		{
			name: "toml without header",
			file: "pte.toml",
			content: `[generate]
func = "solve"
`,
			expectErr: ErrNotPTE,
		},
		{
			name: "toml of another type",
			file: "pte.toml",
			content: `format = "PTE"
type = "RUN"
`,
			expectErr: ErrWrongType,
		},
		{
			name:      "yaml without header",
			file:      "pte.yml",
			content:   "generate:\n  func: solve\n",
			expectErr: ErrNotPTE,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p := writeFile(t, t.TempDir(), tc.file, tc.content)

			actual, err := Load(p)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Find(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	p, err := Find(dir)
	assert.NoError(err)
	assert.Equal("", p)

	writeFile(t, dir, "pte.yaml", "format: PTE\ntype: GENERATE\n")
	writeFile(t, dir, "pte.toml", "format = \"PTE\"\ntype = \"GENERATE\"\n")

	p, err = Find(dir)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "pte.toml"), p)
}

func Test_ScanFileInfo(t *testing.T) {
	assert := assert.New(t)

	data := []byte("format = \"PTE\"\ntype = \"GENERATE\"\n\n[generate]\nrows = [1, 2\n")

	info, err := ScanFileInfo(data)

	assert.NoError(err)
	assert.Equal(FileInfo{Format: "PTE", Type: "GENERATE"}, info)
}

func Test_FromEnv_andMerge(t *testing.T) {
	assert := assert.New(t)

	t.Setenv(EnvRows, "in1")
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvFunc, "")
	t.Setenv(EnvPackage, "")
	t.Setenv(EnvModule, "")

	file := Config{Func: "solve", Rows: "4", Output: "out.go"}
	flags := Config{Output: "flag.go"}

	actual := flags.Merge(FromEnv()).Merge(file)

	assert.Equal(Config{Func: "solve", Rows: "in1", Output: "flag.go"}, actual)
}
