package entry

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is a source of raw input lines.
type Reader interface {
	// ReadLine reads a single line with its line terminator removed. Blank
	// lines are returned as the empty string with a nil error.
	//
	// When the input is at its end the returned string is empty and error is
	// io.EOF. If EOF was hit after some text was read, that text is returned
	// with a nil error and the next call returns "", io.EOF.
	ReadLine() (string, error)

	// Close releases any resources held by the Reader. It should be called
	// once the Reader is no longer needed.
	Close() error
}

// DirectReader implements Reader over any io.Reader. It does not interpret
// control or escape sequences in the input.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader implements Reader using a Go implementation of GNU
// Readline, which keeps typing and editing escape sequences out of the input
// and enables history. It should in general only be used when attached
// directly to a TTY.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a DirectReader with a buffered reader on r.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes readline
// with the given prompt. The returned InteractiveReader must have Close called
// on it before disposal to tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close cleans up resources associated with the DirectReader.
func (dr *DirectReader) Close() error {
	// nothing is held yet; kept so DirectReader satisfies Reader.
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line. Both "\n" and "\r\n" terminators are removed.
func (dr *DirectReader) ReadLine() (string, error) {
	line, err := dr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// ReadLine reads the next line from the terminal. An interrupt (Ctrl-C) is
// reported as io.EOF.
func (ir *InteractiveReader) ReadLine() (string, error) {
	line, err := ir.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSuffix(line, "\r"), nil
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
