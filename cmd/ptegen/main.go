/*
Ptegen writes an entry point that reads a solution function's parameters from
standard input, calls the function, and prints what it returns.

Usage:

	ptegen [flags] SOURCE_FILE

SOURCE_FILE is a Go file declaring the solution function. The generated file
is written next to it unless --output says otherwise. Settings not given as
flags are taken from environment variables, then from a pte.toml or pte.yaml
file in the same directory as SOURCE_FILE, then from the defaults.

The flags are:

	-v, --version
		Give the current version of ptegen and then exit.

	-f, --func NAME
		Generate a call to the function NAME. If not given, will default to
		the value of environment variable PTE_FUNC, and if that is not given,
		SOURCE_FILE must declare exactly one function besides main and init.

	-r, --rows POLICY
		Read input according to POLICY. It is one of a number of lines such
		as "4", "line" for a single line, "inN" to read the count from token N
		of the first line, the name of an integer parameter that holds the
		count, "all" to read until the input ends, or "blank" to read until a
		blank line. If not given, will default to the value of environment
		variable PTE_ROWS, and if that is not given, to "blank".

	-o, --output FILE
		Write the generated source to FILE. Give "-" to write to stdout. If
		not given, will default to the value of environment variable
		PTE_OUTPUT, and if that is not given, to pte_main.go next to
		SOURCE_FILE.

	-c, --config FILE
		Read settings from FILE instead of looking for one next to
		SOURCE_FILE.

	-p, --package NAME
		Use NAME in the package clause of the generated file. Defaults to
		"main".

	-m, --module PATH
		Import the runtime packages from under PATH. Defaults to
		"github.com/dekarrin/pte".

	--verbose
		Log what the generator is doing to stderr.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/pte/internal/config"
	"github.com/dekarrin/pte/internal/gen"
	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/internal/signature"
	"github.com/dekarrin/pte/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates that the program was invoked incorrectly.
	ExitUsageError

	// ExitGenerateError indicates that the entry point could not be
	// generated.
	ExitGenerateError
)

const consoleOutputWidth = 80

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of ptegen and then exit.")
	flagFunc    = pflag.StringP("func", "f", "", "Generate a call to the function with the given name.")
	flagRows    = pflag.StringP("rows", "r", "", "Read input according to the given row policy.")
	flagOutput  = pflag.StringP("output", "o", "", "Write the generated source to the given file, or - for stdout.")
	flagConfig  = pflag.StringP("config", "c", "", "Read settings from the given config file.")
	flagPackage = pflag.StringP("package", "p", "", "Use the given package name in the generated file.")
	flagModule  = pflag.StringP("module", "m", "", "Import the runtime packages from under the given path.")
	flagVerbose = pflag.Bool("verbose", false, "Log what the generator is doing.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (PTE v%s)\n", version.GeneratorCurrent, version.Current)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "No source file given\nDo -h for help.\n")
		os.Exit(ExitUsageError)
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(ExitUsageError)
	}
	sourceFile := args[0]

	log := zap.NewNop()
	if *flagVerbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: create logger: %s\n", err.Error())
			os.Exit(ExitUsageError)
		}
	}
	defer log.Sync()

	cfg, err := loadConfig(sourceFile, log)
	if err != nil {
		fail(err, ExitUsageError)
	}
	if cfg.Output == "" {
		cfg.Output = filepath.Join(filepath.Dir(sourceFile), config.DefaultOutput)
	}

	policy, err := gen.ParsePolicy(cfg.Rows)
	if err != nil {
		fail(err, ExitUsageError)
	}

	sig, err := signature.ParseFile(sourceFile, cfg.Func)
	if err != nil {
		fail(err, ExitGenerateError)
	}
	log.Info("found function", zap.Stringer("signature", sig))

	src, err := gen.Generate(sig, gen.Options{
		Package: cfg.Package,
		Module:  cfg.Module,
		Rows:    policy,
		Logger:  log,
	})
	if err != nil {
		fail(err, ExitGenerateError)
	}

	if cfg.Output == "-" {
		if _, err := os.Stdout.Write(src); err != nil {
			fail(fmt.Errorf("write generated source: %w", err), ExitGenerateError)
		}
		return
	}

	if err := os.WriteFile(cfg.Output, src, 0644); err != nil {
		fail(fmt.Errorf("write generated source: %w", err), ExitGenerateError)
	}
	log.Info("wrote entry point", zap.String("file", cfg.Output))
}

// loadConfig assembles the settings with flags taking precedence over
// environment variables, which take precedence over the config file.
func loadConfig(sourceFile string, log *zap.Logger) (config.Config, error) {
	var flags config.Config
	if pflag.Lookup("func").Changed {
		flags.Func = *flagFunc
	}
	if pflag.Lookup("rows").Changed {
		flags.Rows = *flagRows
	}
	if pflag.Lookup("output").Changed {
		flags.Output = *flagOutput
	}
	if pflag.Lookup("package").Changed {
		flags.Package = *flagPackage
	}
	if pflag.Lookup("module").Changed {
		flags.Module = *flagModule
	}

	cfgFile := *flagConfig
	if !pflag.Lookup("config").Changed {
		var err error
		cfgFile, err = config.Find(filepath.Dir(sourceFile))
		if err != nil {
			return config.Config{}, err
		}
	}

	var file config.Config
	if cfgFile != "" {
		var err error
		file, err = config.Load(cfgFile)
		if err != nil {
			return config.Config{}, pteerrors.WrapUserf(err, "Could not read config file %s: %v", cfgFile, err)
		}
		log.Info("loaded config file", zap.String("file", cfgFile))
	}

	return flags.Merge(config.FromEnv()).Merge(file), nil
}

func fail(err error, code int) {
	msg := rosed.Edit("ERROR: " + pteerrors.Message(err)).Wrap(consoleOutputWidth).String()
	fmt.Fprintf(os.Stderr, "%s\n", msg)
	os.Exit(code)
}
