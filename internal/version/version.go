// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of PTE.
const Current = "0.1.0"

// GeneratorCurrent is the string representing the current version of the code
// generator. Generated files only change shape when it does.
const GeneratorCurrent = "0.1.0"
