package lines

import "fmt"

// Shape is which of the three consumers a parameter is read with.
type Shape int

const (
	// ShapeScalar is a single value, read with Consume.
	ShapeScalar Shape = iota

	// ShapeSlice is one line of values, read with ConsumeSlice.
	ShapeSlice

	// ShapeGrid is all remaining lines of values, read with ConsumeGrid.
	ShapeGrid
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeSlice:
		return "slice"
	case ShapeGrid:
		return "grid"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Binder reads one parameter's worth of input from a Lines buffer when the
// caller does not know the element type statically.
type Binder interface {
	// Bind consumes from ls and returns the value, or false if it is absent.
	// The value is a T, []T, or [][]T depending on the shape.
	Bind(ls *Lines) (any, bool)

	// Shape returns which consumer Bind uses.
	Shape() Shape
}

// Arg pairs a Shape with the Parser used for its elements. It implements
// Binder by switching on the shape.
type Arg[T any] struct {
	Kind  Shape
	Parse Parser[T]
}

// NewArg returns an Arg with the given shape and element parser.
func NewArg[T any](shape Shape, p Parser[T]) Arg[T] {
	return Arg[T]{Kind: shape, Parse: p}
}

// Shape returns a.Kind.
func (a Arg[T]) Shape() Shape {
	return a.Kind
}

// Bind consumes a value of a's shape from ls.
func (a Arg[T]) Bind(ls *Lines) (any, bool) {
	switch a.Kind {
	case ShapeScalar:
		v, ok := Consume(ls, a.Parse)
		return v, ok
	case ShapeSlice:
		v, ok := ConsumeSlice(ls, a.Parse)
		return v, ok
	case ShapeGrid:
		v, ok := ConsumeGrid(ls, a.Parse)
		return v, ok
	default:
		panic(fmt.Sprintf("unknown shape: %v", a.Kind))
	}
}

type binderFactory func(Shape) Binder

func factory[T any](p Parser[T]) binderFactory {
	return func(s Shape) Binder {
		return NewArg(s, p)
	}
}

// elements maps Go element type names to a constructor for their Binder.
var elements = map[string]binderFactory{
	"int":     factory(Int),
	"int8":    factory(Int8),
	"int16":   factory(Int16),
	"int32":   factory(Int32),
	"int64":   factory(Int64),
	"uint":    factory(Uint),
	"uint8":   factory(Uint8),
	"uint16":  factory(Uint16),
	"uint32":  factory(Uint32),
	"uint64":  factory(Uint64),
	"float32": factory(Float32),
	"float64": factory(Float64),
	"string":  factory(String),
	"bool":    factory(Bool),
	"rune":    factory(Rune),
	"byte":    factory(Byte),
}

// ParserNames maps each supported Go element type name to the name of its
// Parser function in this package.
var ParserNames = map[string]string{
	"int":     "Int",
	"int8":    "Int8",
	"int16":   "Int16",
	"int32":   "Int32",
	"int64":   "Int64",
	"uint":    "Uint",
	"uint8":   "Uint8",
	"uint16":  "Uint16",
	"uint32":  "Uint32",
	"uint64":  "Uint64",
	"float32": "Float32",
	"float64": "Float64",
	"string":  "String",
	"bool":    "Bool",
	"rune":    "Rune",
	"byte":    "Byte",
}

// BinderFor returns a Binder reading values of the named Go element type in
// the given shape. The returned bool is false if elem is not a supported
// element type.
func BinderFor(elem string, shape Shape) (Binder, bool) {
	f, ok := elements[elem]
	if !ok {
		return nil, false
	}
	return f(shape), true
}

// IsInteger returns whether elem names one of the integer element types.
func IsInteger(elem string) bool {
	switch elem {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return true
	default:
		return false
	}
}
