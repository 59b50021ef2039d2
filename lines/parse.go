package lines

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Parser converts a single token to a value of type T. A non-nil error means
// the token is not a T; consumers treat that as the token being absent rather
// than as a failure.
type Parser[T any] func(tok string) (T, error)

// String accepts every token as-is, including the empty token produced by two
// separators in a row.
func String(tok string) (string, error) {
	return tok, nil
}

// Int parses a base-10 int.
func Int(tok string) (int, error) {
	return strconv.Atoi(tok)
}

// Int8 parses a base-10 int8.
func Int8(tok string) (int8, error) {
	v, err := strconv.ParseInt(tok, 10, 8)
	return int8(v), err
}

// Int16 parses a base-10 int16.
func Int16(tok string) (int16, error) {
	v, err := strconv.ParseInt(tok, 10, 16)
	return int16(v), err
}

// Int32 parses a base-10 int32.
func Int32(tok string) (int32, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	return int32(v), err
}

// Int64 parses a base-10 int64.
func Int64(tok string) (int64, error) {
	return strconv.ParseInt(tok, 10, 64)
}

// Uint parses a base-10 uint.
func Uint(tok string) (uint, error) {
	v, err := strconv.ParseUint(tok, 10, strconv.IntSize)
	return uint(v), err
}

// Uint8 parses a base-10 uint8.
func Uint8(tok string) (uint8, error) {
	v, err := strconv.ParseUint(tok, 10, 8)
	return uint8(v), err
}

// Uint16 parses a base-10 uint16.
func Uint16(tok string) (uint16, error) {
	v, err := strconv.ParseUint(tok, 10, 16)
	return uint16(v), err
}

// Uint32 parses a base-10 uint32.
func Uint32(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 10, 32)
	return uint32(v), err
}

// Uint64 parses a base-10 uint64.
func Uint64(tok string) (uint64, error) {
	return strconv.ParseUint(tok, 10, 64)
}

// Float32 parses a float32.
func Float32(tok string) (float32, error) {
	v, err := strconv.ParseFloat(tok, 32)
	return float32(v), err
}

// Float64 parses a float64.
func Float64(tok string) (float64, error) {
	return strconv.ParseFloat(tok, 64)
}

// Bool parses any form accepted by strconv.ParseBool.
func Bool(tok string) (bool, error) {
	return strconv.ParseBool(tok)
}

// Rune accepts a token made of exactly one rune.
func Rune(tok string) (rune, error) {
	r, size := utf8.DecodeRuneInString(tok)
	if size == 0 || size != len(tok) || (r == utf8.RuneError && size == 1) {
		return 0, fmt.Errorf("not a single character: %q", tok)
	}
	return r, nil
}

// Byte accepts a token made of exactly one byte.
func Byte(tok string) (byte, error) {
	if len(tok) != 1 {
		return 0, fmt.Errorf("not a single byte: %q", tok)
	}
	return tok[0], nil
}
