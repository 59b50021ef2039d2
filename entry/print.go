package entry

import (
	"fmt"
	"io"
	"strings"
)

// RuneText renders a rune as the character it is, the same form Rune reads.
func RuneText(r rune) string {
	return string(r)
}

// ByteText renders a byte as the one-byte string it is, the same form Byte
// reads.
func ByteText(b byte) string {
	return string([]byte{b})
}

func sprint[T any](v T) string {
	return fmt.Sprint(v)
}

// FormatSlice renders v as its elements separated by single spaces.
func FormatSlice[T any](v []T) string {
	return FormatSliceWith(v, sprint[T])
}

// FormatSliceWith renders v as its elements separated by single spaces, each
// element rendered by f.
func FormatSliceWith[T any](v []T, f func(T) string) string {
	var sb strings.Builder
	for i := range v {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(f(v[i]))
	}
	return sb.String()
}

// FormatGrid renders v one row per line, each row as by FormatSlice. There is
// no trailing newline.
func FormatGrid[T any](v [][]T) string {
	rows := make([]string, len(v))
	for i := range v {
		rows[i] = FormatSlice(v[i])
	}
	return strings.Join(rows, "\n")
}

// WriteScalar writes v followed by a newline.
func WriteScalar[T any](w io.Writer, v T) error {
	return WriteScalarWith(w, v, sprint[T])
}

// WriteScalarWith writes v as rendered by f, followed by a newline.
func WriteScalarWith[T any](w io.Writer, v T, f func(T) string) error {
	_, err := io.WriteString(w, f(v)+"\n")
	return err
}

// WriteSlice writes v on one line, elements separated by spaces.
func WriteSlice[T any](w io.Writer, v []T) error {
	return WriteSliceWith(w, v, sprint[T])
}

// WriteSliceWith is WriteSlice with each element rendered by f.
func WriteSliceWith[T any](w io.Writer, v []T, f func(T) string) error {
	_, err := io.WriteString(w, FormatSliceWith(v, f)+"\n")
	return err
}

// WriteGrid writes v one row per line.
func WriteGrid[T any](w io.Writer, v [][]T) error {
	return WriteGridWith(w, v, sprint[T])
}

// WriteGridWith is WriteGrid with each element rendered by f.
func WriteGridWith[T any](w io.Writer, v [][]T, f func(T) string) error {
	for i := range v {
		if _, err := io.WriteString(w, FormatSliceWith(v[i], f)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// PrintScalar writes the result v to the session's output and flushes it.
func PrintScalar[T any](s *Session, v T) {
	s.print(WriteScalar(s.out, v))
}

// PrintSlice writes the result v to the session's output and flushes it.
func PrintSlice[T any](s *Session, v []T) {
	s.print(WriteSlice(s.out, v))
}

// PrintGrid writes the result v to the session's output and flushes it.
func PrintGrid[T any](s *Session, v [][]T) {
	s.print(WriteGrid(s.out, v))
}

// PrintScalarWith is PrintScalar rendering v with f. Generated code uses it
// with RuneText and ByteText for character results.
func PrintScalarWith[T any](s *Session, v T, f func(T) string) {
	s.print(WriteScalarWith(s.out, v, f))
}

// PrintSliceWith is PrintSlice rendering each element with f.
func PrintSliceWith[T any](s *Session, v []T, f func(T) string) {
	s.print(WriteSliceWith(s.out, v, f))
}

// PrintGridWith is PrintGrid rendering each element with f.
func PrintGridWith[T any](s *Session, v [][]T, f func(T) string) {
	s.print(WriteGridWith(s.out, v, f))
}

func (s *Session) print(err error) {
	if err != nil {
		s.Fail(fmt.Errorf("could not write output: %w", err))
		return
	}
	if err := s.out.Flush(); err != nil {
		s.Fail(fmt.Errorf("could not flush output: %w", err))
	}
}
