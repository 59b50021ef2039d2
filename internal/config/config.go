// Package config loads generator settings from a PTE config file, a
// TOML-based (or YAML-based) file placed next to the solution source, and
// from environment variables.
//
// A config file looks like this:
//
//	format = "PTE"
//	type = "GENERATE"
//
//	[generate]
//	func = "solve"
//	rows = "in0"
//	output = "pte_main.go"
//	package = "main"
//	module = "github.com/dekarrin/pte"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	EnvFunc    = "PTE_FUNC"
	EnvRows    = "PTE_ROWS"
	EnvOutput  = "PTE_OUTPUT"
	EnvPackage = "PTE_PACKAGE"
	EnvModule  = "PTE_MODULE"
)

// DefaultOutput is the file generated source is written to when nothing else
// is configured.
const DefaultOutput = "pte_main.go"

// Names are the file names Find looks for, in order.
var Names = []string{"pte.toml", "pte.yaml", "pte.yml"}

var (
	// ErrNotPTE is the error returned when a config file does not have the
	// PTE format header.
	ErrNotPTE = errors.New("file does not have a 'format = \"PTE\"' entry")

	// ErrWrongType is the error returned when a config file is a PTE file but
	// not a GENERATE one.
	ErrWrongType = errors.New("file does not have a 'type = \"GENERATE\"' entry")
)

// Config is the generator configuration. Empty fields mean "use the default".
type Config struct {
	// Func is the name of the solution function.
	Func string

	// Rows is the row policy in its textual form, such as "4" or "in0".
	Rows string

	// Output is the path generated source is written to.
	Output string

	// Package is the package clause of the generated file.
	Package string

	// Module is the import path of the runtime packages.
	Module string
}

// FileInfo contains the header every PTE config file must have.
type FileInfo struct {
	Format string `toml:"format" yaml:"format"`
	Type   string `toml:"type" yaml:"type"`
}

type generateSection struct {
	Func    string      `toml:"func" yaml:"func"`
	Rows    interface{} `toml:"rows" yaml:"rows"`
	Output  string      `toml:"output" yaml:"output"`
	Package string      `toml:"package" yaml:"package"`
	Module  string      `toml:"module" yaml:"module"`
}

type topLevel struct {
	FileInfo `yaml:",inline"`
	Generate generateSection `toml:"generate" yaml:"generate"`
}

// Find returns the path of the first config file named in Names that exists
// in dir. If there is none, the returned path is empty and error is nil.
func Find(dir string) (string, error) {
	for _, name := range Names {
		p := filepath.Join(dir, name)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("check for %q: %w", p, err)
		}
	}
	return "", nil
}

// Load reads the config file at path. Files ending in .yaml or .yml are read
// as YAML; anything else is read as TOML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	var top topLevel
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &top)
	default:
		// check the header first so a TOML file of some other kind is
		// reported as such rather than as a decoding problem.
		info, scanErr := ScanFileInfo(data)
		if scanErr != nil {
			return Config{}, fmt.Errorf("%q: detecting file type: %w", path, scanErr)
		}
		if err := info.check(); err != nil {
			return Config{}, fmt.Errorf("%q: %w", path, err)
		}
		err = toml.Unmarshal(data, &top)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	if err := top.FileInfo.check(); err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	return top.Generate.toConfig(), nil
}

// ScanFileInfo reads only the header of TOML config data. The bytes are read
// up to the first table header and those bytes are parsed for the info.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-level table
	var topLevelEnd int = -1
	var onNewLine = true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}

func (fi FileInfo) check() error {
	if strings.ToUpper(fi.Format) != "PTE" {
		return ErrNotPTE
	}
	if strings.ToUpper(fi.Type) != "GENERATE" {
		return ErrWrongType
	}
	return nil
}

func (gs generateSection) toConfig() Config {
	cfg := Config{
		Func:    gs.Func,
		Output:  gs.Output,
		Package: gs.Package,
		Module:  gs.Module,
	}
	if gs.Rows != nil {
		// rows = 4 and rows = "4" are both allowed
		cfg.Rows = fmt.Sprint(gs.Rows)
	}
	return cfg
}

// FromEnv returns a Config with the fields set by environment variables.
func FromEnv() Config {
	return Config{
		Func:    os.Getenv(EnvFunc),
		Rows:    os.Getenv(EnvRows),
		Output:  os.Getenv(EnvOutput),
		Package: os.Getenv(EnvPackage),
		Module:  os.Getenv(EnvModule),
	}
}

// Merge returns cfg with every empty field filled in from other.
func (cfg Config) Merge(other Config) Config {
	if cfg.Func == "" {
		cfg.Func = other.Func
	}
	if cfg.Rows == "" {
		cfg.Rows = other.Rows
	}
	if cfg.Output == "" {
		cfg.Output = other.Output
	}
	if cfg.Package == "" {
		cfg.Package = other.Package
	}
	if cfg.Module == "" {
		cfg.Module = other.Module
	}
	return cfg
}
