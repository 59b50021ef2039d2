// Package lines implements the token consumption protocol used by generated
// entry points to turn raw input text into typed parameter values.
//
// Input is split into lines on "\n" and each line is split into tokens on the
// single space character. Values are pulled out of a Lines buffer with one of
// three consumers: Consume for a single scalar, ConsumeSlice for one line's
// worth of values, and ConsumeGrid for every line that is left. All three
// destructively advance the buffer; nothing is ever rewound.
//
// A Lines is not safe for concurrent use. It is meant to be driven to
// exhaustion by a single caller in parameter order.
package lines

import "strings"

// Separator is the token separator within a line. It is the single space
// character and not general whitespace, so two spaces in a row produce an
// empty token between them.
const Separator = " "

// Line is the tokens of one line of text along with a cursor marking the next
// unconsumed token. Taking a token moves the cursor past it for good.
//
// Line should not be created directly; use [NewLine].
type Line struct {
	tokens []string
	cur    int
}

// NewLine splits text on [Separator] and returns a Line positioned at its
// first token. Text with no separators is a single token, and the empty
// string is a single empty token.
func NewLine(text string) *Line {
	return &Line{tokens: strings.Split(text, Separator)}
}

// Next returns the next unconsumed token. If the line has been exhausted, the
// returned bool is false, and it stays false on every later call.
//
// Empty tokens are returned like any other. Consume hands them to its parser,
// so a String scalar can be ""; Drain drops them.
func (l *Line) Next() (string, bool) {
	if l.cur >= len(l.tokens) {
		return "", false
	}
	tok := l.tokens[l.cur]
	l.cur++
	return tok, true
}

// Remaining returns the number of tokens that have not yet been consumed.
func (l *Line) Remaining() int {
	return len(l.tokens) - l.cur
}

// Drain consumes every remaining token of l and returns those that p accepts,
// in order. Empty tokens and tokens p rejects are dropped without error, so
// the length of the result says nothing about how many tokens the line held.
// A blank line therefore drains to an empty slice even when p is String.
//
// After Drain, l is exhausted.
func Drain[T any](l *Line, p Parser[T]) []T {
	vals := make([]T, 0, l.Remaining())
	for tok, ok := l.Next(); ok; tok, ok = l.Next() {
		if tok == "" {
			continue
		}
		v, err := p(tok)
		if err != nil {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}
