// Package entry contains the runtime support used by generated entry points:
// reading input lines from stdin per a row policy, binding parameters out of
// the resulting lines buffer, and printing the solution's result.
//
// Generated programs treat missing input as fatal. When a parameter cannot be
// bound, the session reports which one to stderr and exits with
// ExitNoInput.
package entry

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/pte/lines"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitIOError indicates that reading input or writing output failed.
	ExitIOError

	// ExitNoInput indicates that input ran out before every parameter was
	// bound.
	ExitNoInput
)

// EnvDirect is the environment variable that, when set to any non-empty
// value, forces reading stdin directly even when it is a terminal.
const EnvDirect = "PTE_DIRECT"

// Session holds the input reader, output writer and lines buffer of one run
// of a generated entry point.
//
// Session should not be created directly; use [Start] or [NewSession].
type Session struct {
	in     Reader
	out    *bufio.Writer
	errOut io.Writer
	buf    *lines.Lines
	exit   func(code int)
}

// Start opens a Session on the given streams. If in is nil, os.Stdin is used;
// if out is nil, os.Stdout is used. When both are the process's stdin and
// stdout and stdin is a terminal, input is read through readline unless
// EnvDirect is set.
func Start(in io.Reader, out io.Writer) *Session {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	var r Reader = NewDirectReader(in)
	if UseInteractive(in, out) {
		ir, err := NewInteractiveReader("")
		if err == nil {
			r = ir
		}
	}

	return NewSession(r, out)
}

// UseInteractive returns whether a Session on the given streams would read
// through readline.
func UseInteractive(in io.Reader, out io.Writer) bool {
	if os.Getenv(EnvDirect) != "" {
		return false
	}
	if in != os.Stdin || out != os.Stdout {
		return false
	}
	return readline.IsTerminal(int(os.Stdin.Fd()))
}

// NewSession creates a Session reading from r and writing results to out.
func NewSession(r Reader, out io.Writer) *Session {
	return &Session{
		in:     r,
		out:    bufio.NewWriter(out),
		errOut: os.Stderr,
		exit:   os.Exit,
	}
}

// Lines returns the session's buffer. It is nil until the first call to Read.
func (s *Session) Lines() *lines.Lines {
	return s.buf
}

// Read reads input per rows and appends it to the session's buffer, creating
// the buffer on first use. End of input is not an error here; consumers will
// report absence if too little was read. Any other read error ends the
// program.
func (s *Session) Read(rows Rows) {
	text, err := ReadText(s.in, rows)
	if err != nil && err != io.EOF {
		s.Fail(fmt.Errorf("read input: %w", err))
		return
	}

	if err == io.EOF {
		return
	}
	if s.buf == nil {
		s.buf = lines.New(text)
	} else {
		s.buf.Extend(text)
	}
}

// ReadCount reads n more lines, where n is a row count taken from an already
// bound parameter. Zero and negative counts read nothing and leave the buffer
// as it is.
func (s *Session) ReadCount(n int64) {
	if n <= 0 {
		return
	}
	s.Read(Fixed(int(n)))
}

// Close releases the session's reader.
func (s *Session) Close() error {
	return s.in.Close()
}

// Fail reports err on stderr and ends the program with ExitIOError.
func (s *Session) Fail(err error) {
	fmt.Fprintf(s.errOut, "ERROR: %s\n", err.Error())
	s.terminate(ExitIOError)
}

// Absent reports that no input was left for the named parameter and ends the
// program with ExitNoInput.
func (s *Session) Absent(param string) {
	fmt.Fprintf(s.errOut, "ERROR: no input left for parameter %q\n", param)
	s.terminate(ExitNoInput)
}

func (s *Session) terminate(code int) {
	s.in.Close()
	s.exit(code)
}

func (s *Session) buffer() *lines.Lines {
	if s.buf == nil {
		// nothing was read; consumers see an empty buffer.
		s.buf = &lines.Lines{}
	}
	return s.buf
}

// Scalar binds a single value for the named parameter. If input has run out,
// the program ends.
func Scalar[T any](s *Session, name string, p lines.Parser[T]) T {
	v, ok := lines.Consume(s.buffer(), p)
	if !ok {
		s.Absent(name)
	}
	return v
}

// Slice binds one line of values for the named parameter. If input has run
// out, the program ends.
func Slice[T any](s *Session, name string, p lines.Parser[T]) []T {
	v, ok := lines.ConsumeSlice(s.buffer(), p)
	if !ok {
		s.Absent(name)
	}
	return v
}

// Grid binds every remaining line for the named parameter. If input has run
// out, the program ends.
func Grid[T any](s *Session, name string, p lines.Parser[T]) [][]T {
	v, ok := lines.ConsumeGrid(s.buffer(), p)
	if !ok {
		s.Absent(name)
	}
	return v
}
