package lines

import "strings"

// LineSeparator is the separator between lines in input text.
const LineSeparator = "\n"

// Lines is an ordered buffer of Line values consumed from the front. The front
// Line, if there is one, is the line currently being read token by token. Once
// a Line is popped it is never revisited; the only way to grow the buffer is
// [Lines.Extend].
//
// The zero value is an empty buffer. Use [New] to create one holding text.
type Lines struct {
	buf []*Line
}

// New splits text on [LineSeparator] and returns a Lines holding one Line per
// resulting piece. Empty text produces a buffer with a single blank line.
func New(text string) *Lines {
	ls := &Lines{}
	ls.Extend(text)
	return ls
}

// Extend splits text on [LineSeparator] and appends the resulting lines to the
// back of the buffer, after everything already in it. It is used when the
// number of lines to read is only known after earlier lines were consumed.
func (ls *Lines) Extend(text string) {
	for _, s := range strings.Split(text, LineSeparator) {
		ls.buf = append(ls.buf, NewLine(s))
	}
}

// PopFront removes and returns the front Line. If the buffer is empty, the
// returned bool is false.
func (ls *Lines) PopFront() (*Line, bool) {
	if len(ls.buf) == 0 {
		return nil, false
	}
	l := ls.buf[0]
	ls.buf[0] = nil
	ls.buf = ls.buf[1:]
	return l, true
}

// Next returns the next token of the front Line. The front Line is not popped
// even when it has run out of tokens; in that case, or when the buffer is
// empty, the returned bool is false.
func (ls *Lines) Next() (string, bool) {
	if len(ls.buf) == 0 {
		return "", false
	}
	return ls.buf[0].Next()
}

// Empty returns whether there are no lines left. A buffer whose only line has
// been read to the end is not Empty until that line is popped.
func (ls *Lines) Empty() bool {
	return len(ls.buf) == 0
}

// Len returns the number of lines left in the buffer, including a partially
// consumed front line.
func (ls *Lines) Len() int {
	return len(ls.buf)
}

// Size is the number of lines left plus the number of unconsumed tokens
// across all of them. No consumer ever increases it; only Extend does.
func (ls *Lines) Size() int {
	n := len(ls.buf)
	for _, l := range ls.buf {
		n += l.Remaining()
	}
	return n
}
