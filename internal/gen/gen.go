// Package gen writes the Go source of an entry point that reads a solution
// function's parameters from stdin, calls it, and prints its result.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/internal/signature"
	"github.com/dekarrin/pte/lines"
	"go.uber.org/zap"
)

// DefaultModule is the import path the runtime packages are found under.
const DefaultModule = "github.com/dekarrin/pte"

// DefaultPackage is the package generated files are placed in.
const DefaultPackage = "main"

// Header is the first line of every generated file.
const Header = "// Code generated by ptegen. DO NOT EDIT."

// reserved are names a parameter may not have because the generated main
// refers to them.
var reserved = map[string]bool{
	"os":    true,
	"entry": true,
	"lines": true,
	"main":  true,
}

// charFormatters are the entry formatters for result element types read as
// characters.
var charFormatters = map[string]string{
	"rune": "RuneText",
	"byte": "ByteText",
}

// Options control code generation. The zero value generates package main
// reading until a blank line.
type Options struct {
	// Package is the package clause of the generated file. Defaults to
	// DefaultPackage.
	Package string

	// Module is the import path the entry and lines packages live under.
	// Defaults to DefaultModule.
	Module string

	// Rows is the row-count policy.
	Rows Policy

	// Logger receives debug output about generation. A nil Logger discards
	// it.
	Logger *zap.Logger
}

var mainTmpl = template.Must(template.New("main").Parse(`{{.Header}}

package {{.Package}}

import (
	"os"

	"{{.Module}}/entry"
{{- if .UsesLines}}
	"{{.Module}}/lines"
{{- end}}
)

func main() {
	{{.Session}} := entry.Start(os.Stdin, os.Stdout)
	defer {{.Session}}.Close()

	{{.Session}}.Read({{.Rows}})
{{- range .Steps}}
	{{.}}
{{- end}}
}
`))

type mainData struct {
	Header    string
	Package   string
	Module    string
	UsesLines bool
	Session   string
	Rows      string
	Steps     []string
}

// Generate returns gofmt'd source for a main function that calls the function
// described by sig.
func Generate(sig signature.Signature, opts Options) ([]byte, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if opts.Module == "" {
		opts.Module = DefaultModule
	}

	if sig.Name == "main" {
		return nil, pteerrors.Userf("The function to call cannot itself be main")
	}
	for _, p := range sig.Params {
		if reserved[p.Name] {
			return nil, pteerrors.Userf("Parameter %s of %s has a name the generated main needs; rename it", p.Name, sig.Name)
		}
		if p.Name == sig.Name {
			return nil, pteerrors.Userf("Parameter %s of %s has the same name as the function, which would hide it from main; rename it", p.Name, sig.Name)
		}
	}
	if err := opts.Rows.Validate(sig); err != nil {
		return nil, err
	}

	data := mainData{
		Header:    Header,
		Package:   opts.Package,
		Module:    opts.Module,
		UsesLines: len(sig.Params) > 0,
		Session:   sessionVar(sig),
		Rows:      opts.Rows.rowsExpr(),
	}

	args := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		step, err := bindStmt(data.Session, p)
		if err != nil {
			return nil, err
		}
		data.Steps = append(data.Steps, step)
		args[i] = p.Name

		if opts.Rows.Kind == PolicyParam && p.Name == opts.Rows.Param {
			data.Steps = append(data.Steps, fmt.Sprintf("%s.ReadCount(int64(%s))", data.Session, p.Name))
		}
		log.Debug("bound parameter", zap.String("name", p.Name), zap.String("type", p.Type()), zap.Stringer("shape", p.Shape))
	}

	data.Steps = append(data.Steps, callStmt(data.Session, sig, args))

	var buf bytes.Buffer
	if err := mainTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}

	log.Debug("generated entry point", zap.String("func", sig.Name), zap.Stringer("rows", opts.Rows), zap.Int("bytes", len(src)))
	return src, nil
}

// sessionVar picks a name for the session variable that no parameter uses.
func sessionVar(sig signature.Signature) string {
	name := "s"
	for i := 0; ; i++ {
		if _, idx := sig.Param(name); idx < 0 && name != sig.Name {
			return name
		}
		name = fmt.Sprintf("s%d", i)
	}
}

func bindStmt(session string, p signature.Param) (string, error) {
	parser, ok := lines.ParserNames[p.Elem]
	if !ok {
		return "", pteerrors.Userf("Parameter %s has type %s, which cannot be read from input", p.Name, p.Type())
	}

	var fn string
	switch p.Shape {
	case lines.ShapeScalar:
		fn = "Scalar"
	case lines.ShapeSlice:
		fn = "Slice"
	case lines.ShapeGrid:
		fn = "Grid"
	default:
		return "", fmt.Errorf("parameter %s: unknown shape %v", p.Name, p.Shape)
	}

	return fmt.Sprintf("%s := entry.%s(%s, %q, lines.%s)", p.Name, fn, session, p.Name, parser), nil
}

func callStmt(session string, sig signature.Signature, args []string) string {
	call := sig.Name + "("
	for i := range args {
		if i > 0 {
			call += ", "
		}
		call += args[i]
	}
	call += ")"

	if sig.Result == nil {
		return call
	}

	var fn string
	switch sig.Result.Shape {
	case lines.ShapeSlice:
		fn = "PrintSlice"
	case lines.ShapeGrid:
		fn = "PrintGrid"
	default:
		fn = "PrintScalar"
	}

	// rune and byte are int32 and uint8 to fmt; print them as characters,
	// the way they were read.
	if text, ok := charFormatters[sig.Result.Elem]; ok {
		return fmt.Sprintf("entry.%sWith(%s, %s, entry.%s)", fn, session, call, text)
	}
	return fmt.Sprintf("entry.%s(%s, %s)", fn, session, call)
}
