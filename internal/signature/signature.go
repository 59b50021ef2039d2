// Package signature reads the declaration of a solution function out of Go
// source and describes how each of its parameters is read from input.
package signature

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/dekarrin/pte/internal/pteerrors"
	"github.com/dekarrin/pte/lines"
)

// Param is one parameter, or the result, of a solution function.
type Param struct {
	// Name is the parameter name. Unnamed and blank parameters are given a
	// generated name of the form argN, where N is the 0-based position.
	Name string

	// Elem is the Go name of the element type, such as "int" or "string".
	Elem string

	// Shape is whether the parameter is a single Elem, a slice of them, or a
	// slice of slices.
	Shape lines.Shape
}

// Type returns the Go type expression for p, such as "[][]int".
func (p Param) Type() string {
	switch p.Shape {
	case lines.ShapeSlice:
		return "[]" + p.Elem
	case lines.ShapeGrid:
		return "[][]" + p.Elem
	default:
		return p.Elem
	}
}

func (p Param) String() string {
	return p.Name + " " + p.Type()
}

// Signature is the name, parameters and result of a solution function.
type Signature struct {
	Name   string
	Params []Param

	// Result is the single result of the function, or nil if it returns
	// nothing. Its Name is always empty.
	Result *Param
}

// Param returns the parameter with the given name and its index. If there is
// no such parameter, the returned index is -1.
func (sig Signature) Param(name string) (Param, int) {
	for i := range sig.Params {
		if sig.Params[i].Name == name {
			return sig.Params[i], i
		}
	}
	return Param{}, -1
}

func (sig Signature) String() string {
	params := make([]string, len(sig.Params))
	for i := range sig.Params {
		params[i] = sig.Params[i].String()
	}
	s := fmt.Sprintf("func %s(%s)", sig.Name, strings.Join(params, ", "))
	if sig.Result != nil {
		s += " " + sig.Result.Type()
	}
	return s
}

// ParseFile reads the Go source file at path and parses the named function's
// signature from it. See Parse.
func ParseFile(path, funcName string) (Signature, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Signature{}, pteerrors.WrapUserf(err, "Could not read %s", path)
	}
	return parse(path, src, funcName)
}

// Parse parses Go source and returns the signature of the top-level function
// named funcName. If funcName is empty and the source declares exactly one
// top-level function other than main and init, that function is used.
func Parse(src []byte, funcName string) (Signature, error) {
	return parse("", src, funcName)
}

// ParseDecl parses a lone function declaration such as
// "func solve(a, b int) int". A body is optional.
func ParseDecl(decl string) (Signature, error) {
	src := "package p\n\n" + decl
	return parse("", []byte(src), "")
}

func parse(filename string, src []byte, funcName string) (Signature, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return Signature{}, pteerrors.WrapUserf(err, "The source is not valid Go: %v", err)
	}

	fd, err := findFunc(file, funcName)
	if err != nil {
		return Signature{}, err
	}

	return fromDecl(fd)
}

func findFunc(file *ast.File, name string) (*ast.FuncDecl, error) {
	var candidates []*ast.FuncDecl
	var method *ast.FuncDecl

	for _, d := range file.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fd.Recv != nil {
			if fd.Name.Name == name {
				method = fd
			}
			continue
		}
		if name == "" {
			if fd.Name.Name != "main" && fd.Name.Name != "init" {
				candidates = append(candidates, fd)
			}
		} else if fd.Name.Name == name {
			return fd, nil
		}
	}

	if name != "" {
		if method != nil {
			return nil, pteerrors.Userf("%s is a method; only plain functions can be called from main", name)
		}
		return nil, pteerrors.Userf("There is no function named %s", name)
	}

	switch len(candidates) {
	case 0:
		return nil, pteerrors.Userf("There is no function to call from main")
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i := range candidates {
			names[i] = candidates[i].Name.Name
		}
		return nil, pteerrors.Userf("There is more than one function (%s); say which one to use", strings.Join(names, ", "))
	}
}

func fromDecl(fd *ast.FuncDecl) (Signature, error) {
	sig := Signature{Name: fd.Name.Name}

	if fd.Type.TypeParams != nil && fd.Type.TypeParams.NumFields() > 0 {
		return sig, pteerrors.Userf("%s has type parameters; a generic function cannot be called from main", sig.Name)
	}

	for _, field := range fd.Type.Params.List {
		names := field.Names
		if len(names) == 0 {
			// unnamed parameter
			names = []*ast.Ident{nil}
		}

		for _, ident := range names {
			pos := len(sig.Params)
			name := fmt.Sprintf("arg%d", pos)
			if ident != nil && ident.Name != "_" {
				name = ident.Name
			}

			p, err := paramOf(field.Type)
			if err != nil {
				return sig, pteerrors.WrapUserf(err, "Parameter %s of %s: %s", name, sig.Name, pteerrors.Message(err))
			}
			p.Name = name
			sig.Params = append(sig.Params, p)
		}
	}

	if fd.Type.Results != nil {
		if fd.Type.Results.NumFields() > 1 {
			return sig, pteerrors.Userf("%s returns more than one value; it must return at most one", sig.Name)
		}
		if fd.Type.Results.NumFields() == 1 {
			res, err := paramOf(fd.Type.Results.List[0].Type)
			if err != nil {
				return sig, pteerrors.WrapUserf(err, "Result of %s: %s", sig.Name, pteerrors.Message(err))
			}
			sig.Result = &res
		}
	}

	return sig, nil
}

func paramOf(expr ast.Expr) (Param, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if err := checkElem(t.Name); err != nil {
			return Param{}, err
		}
		return Param{Elem: t.Name, Shape: lines.ShapeScalar}, nil
	case *ast.Ellipsis:
		return Param{}, pteerrors.Userf("variadic parameters are not supported")
	case *ast.ArrayType:
		if t.Len != nil {
			return Param{}, pteerrors.Userf("arrays are not supported; use a slice")
		}
		inner, err := paramOf(t.Elt)
		if err != nil {
			return Param{}, err
		}
		switch inner.Shape {
		case lines.ShapeScalar:
			inner.Shape = lines.ShapeSlice
		case lines.ShapeSlice:
			inner.Shape = lines.ShapeGrid
		default:
			return Param{}, pteerrors.Userf("slices nested more than two deep are not supported")
		}
		return inner, nil
	default:
		return Param{}, pteerrors.Userf("type %s is not supported", exprString(expr))
	}
}

func checkElem(name string) error {
	if _, ok := lines.ParserNames[name]; !ok {
		return pteerrors.Userf("type %s cannot be read from input", name)
	}
	return nil
}

func exprString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + exprString(t.X)
	case *ast.MapType:
		return "map[" + exprString(t.Key) + "]" + exprString(t.Value)
	case *ast.SelectorExpr:
		return exprString(t.X) + "." + t.Sel.Name
	case *ast.Ident:
		return t.Name
	default:
		return fmt.Sprintf("%T", expr)
	}
}
