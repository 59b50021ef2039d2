package lines

// Consume reads a single value from the buffer. The next token of the front
// line is parsed with p; if the front line has no tokens left, or its next
// token does not parse, the front line is popped and the attempt is repeated
// on the line after it. This is how a scalar spills over to the next physical
// line.
//
// Note that a token which fails to parse costs the rest of its line: the line
// is discarded, not just the token.
//
// The returned bool is false only once the buffer is empty.
func Consume[T any](ls *Lines, p Parser[T]) (T, bool) {
	for !ls.Empty() {
		if tok, ok := ls.Next(); ok {
			if v, err := p(tok); err == nil {
				return v, true
			}
		}
		ls.PopFront()
	}

	var zero T
	return zero, false
}

// ConsumeSlice reads one line's worth of values. Lines are popped from the
// front and drained with p until one produces at least one value, and that
// line's values are returned. Lines that produce nothing, such as blank lines
// or lines where no token parses, are discarded along the way. Lines after the
// one returned are not touched.
//
// If the front line was partially consumed by an earlier call to Consume, only
// its remaining tokens are drained.
//
// The returned bool is false if the buffer runs out before a non-empty line is
// found.
func ConsumeSlice[T any](ls *Lines, p Parser[T]) ([]T, bool) {
	for {
		l, ok := ls.PopFront()
		if !ok {
			return nil, false
		}
		if v := Drain(l, p); len(v) > 0 {
			return v, true
		}
	}
}

// ConsumeGrid reads every line left in the buffer, one row per line. Lines
// that produce no values are popped but left out of the result rather than
// kept as empty rows. After ConsumeGrid the buffer is always empty.
//
// The returned bool is false only if the buffer was already empty, which lets
// callers tell "nothing left" apart from "zero rows". A buffer made up only of
// blank lines gives an empty grid and true.
func ConsumeGrid[T any](ls *Lines, p Parser[T]) ([][]T, bool) {
	if ls.Empty() {
		return nil, false
	}

	grid := make([][]T, 0, ls.Len())
	for l, ok := ls.PopFront(); ok; l, ok = ls.PopFront() {
		row := Drain(l, p)
		if len(row) == 0 {
			continue
		}
		grid = append(grid, row)
	}
	return grid, true
}
