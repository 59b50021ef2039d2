package entry

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/pte/lines"
)

// RowKind is the way a Rows policy decides how many lines to read.
type RowKind int

const (
	// RowsUntilBlank reads until a blank line or the end of input. The blank
	// line itself is not kept.
	RowsUntilBlank RowKind = iota

	// RowsFixed reads a fixed number of lines.
	RowsFixed

	// RowsCounted reads one header line and then as many more lines as the
	// number found at a token position in that header.
	RowsCounted

	// RowsAll reads until the end of input.
	RowsAll
)

// Rows is a policy for how many physical lines of input to read. The zero
// value reads until a blank line.
type Rows struct {
	Kind RowKind

	// N is the line count for RowsFixed and the 0-based token index of the
	// count for RowsCounted.
	N int
}

// Fixed returns a policy reading exactly n lines, or fewer if input ends.
func Fixed(n int) Rows {
	return Rows{Kind: RowsFixed, N: n}
}

// Counted returns a policy reading a header line followed by the number of
// lines given by the header's token at index.
func Counted(index int) Rows {
	return Rows{Kind: RowsCounted, N: index}
}

// UntilBlank returns a policy reading until a blank line or the end of input.
func UntilBlank() Rows {
	return Rows{Kind: RowsUntilBlank}
}

// All returns a policy reading until the end of input.
func All() Rows {
	return Rows{Kind: RowsAll}
}

func (r Rows) String() string {
	switch r.Kind {
	case RowsUntilBlank:
		return "blank"
	case RowsFixed:
		return fmt.Sprintf("%d", r.N)
	case RowsCounted:
		return fmt.Sprintf("in%d", r.N)
	case RowsAll:
		return "all"
	default:
		return fmt.Sprintf("Rows(%d, %d)", int(r.Kind), r.N)
	}
}

// ErrNoCount is returned when a counted header line does not hold a row count
// at the requested token position.
var ErrNoCount = errors.New("no row count in header line")

// ReadText reads lines from r per the policy and joins them with
// [lines.LineSeparator], ready for [lines.New] or [lines.Lines.Extend].
//
// Running out of input early is not an error; whatever was read is returned.
// Reaching the end of input before anything at all was read returns "",
// io.EOF.
func ReadText(r Reader, rows Rows) (string, error) {
	var read []string
	var err error

	switch rows.Kind {
	case RowsFixed:
		read, err = readN(r, rows.N)
	case RowsUntilBlank:
		read, err = readWhile(r, func(s string) bool { return s != "" })
	case RowsAll:
		read, err = readWhile(r, func(string) bool { return true })
	case RowsCounted:
		read, err = readCounted(r, rows.N)
	default:
		return "", fmt.Errorf("unknown row policy: %v", rows)
	}

	if err != nil {
		return "", err
	}
	return strings.Join(read, lines.LineSeparator), nil
}

// readN reads up to n lines, stopping early at EOF. io.EOF is returned only
// if input ended before a single line was read.
func readN(r Reader, n int) ([]string, error) {
	read := make([]string, 0, n)
	for len(read) < n {
		s, err := r.ReadLine()
		if err == io.EOF {
			if len(read) == 0 && n > 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(read)+1, err)
		}
		read = append(read, s)
	}
	return read, nil
}

// readWhile reads lines until EOF or until keep returns false for one. That
// line is not included. io.EOF is returned only if input ended before a
// single line was read.
func readWhile(r Reader, keep func(string) bool) ([]string, error) {
	var read []string
	for first := true; ; first = false {
		s, err := r.ReadLine()
		if err == io.EOF {
			if first {
				return nil, io.EOF
			}
			return read, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(read)+1, err)
		}
		if !keep(s) {
			return read, nil
		}
		read = append(read, s)
	}
}

func readCounted(r Reader, index int) ([]string, error) {
	header, err := readN(r, 1)
	if err != nil {
		return nil, err
	}

	n, err := CountAt(header[0], index)
	if err != nil {
		return nil, err
	}

	rest, err := readN(r, n)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return append(header, rest...), nil
}

// CountAt returns the non-negative integer found at the 0-based token index
// of line, tokenized the same way consumers tokenize it.
func CountAt(line string, index int) (int, error) {
	l := lines.NewLine(line)
	for i := 0; i < index; i++ {
		if _, ok := l.Next(); !ok {
			return 0, fmt.Errorf("%w: token %d of %q", ErrNoCount, index, line)
		}
	}

	tok, ok := l.Next()
	if !ok {
		return 0, fmt.Errorf("%w: token %d of %q", ErrNoCount, index, line)
	}

	n, err := lines.Int(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: token %d of %q is %q", ErrNoCount, index, line, tok)
	}
	return n, nil
}
