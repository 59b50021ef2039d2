/*
Ptei starts an interactive preview of how input is bound to a solution
function's parameters.

It reads the function's signature from a Go source file, then reads input one
case at a time according to the row policy and prints the value each parameter
would receive in a generated entry point. It keeps reading cases from stdin
until the input ends or a case starts with the line "QUIT".

Usage:

	ptei [flags] SOURCE_FILE

The flags are:

	-v, --version
		Give the current version of PTE and then exit.

	-f, --func NAME
		Preview the function NAME. If not given, SOURCE_FILE must declare
		exactly one function besides main and init.

	-r, --rows POLICY
		Read each case according to POLICY. Takes the same values as the
		--rows flag of ptegen. Defaults to "blank".

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	--verbose
		Log what the engine is doing to stderr.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/pte"
	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the preview session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode  int = ExitSuccess
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of PTE and then exit.")
	flagFunc        = pflag.StringP("func", "f", "", "Preview the function with the given name.")
	flagRows        = pflag.StringP("rows", "r", "", "Read each case according to the given row policy.")
	flagDirect      = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagVerbose     = pflag.Bool("verbose", false, "Log what the engine is doing.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Give exactly one source file\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	log := zap.NewNop()
	if *flagVerbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: create logger: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}
	defer log.Sync()

	eng, initErr := pte.New(os.Stdin, os.Stdout, args[0], *flagFunc, *flagRows, *flagDirect, log)
	if initErr != nil {
		printErr(initErr)
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if err := eng.RunUntilQuit(); err != nil {
		printErr(err)
		returnCode = ExitSessionError
		return
	}
}

func printErr(err error) {
	msg := rosed.Edit("ERROR: " + pteerrors.Message(err)).Wrap(80).String()
	fmt.Fprintf(os.Stderr, "%s\n", msg)
}
