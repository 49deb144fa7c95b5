// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the byte-level decoding of JSON string escapes.
//
// Unlike jtree's internal/escape package, which unquotes a whole buffer at
// once, this package exposes the individual steps (hex digit folding,
// simple-escape substitution, surrogate pair combination) so a streaming
// lexer can apply them to a handful of bytes at a time and suspend between
// any two of them.
package escape

import "unicode/utf8"

// HexDigit returns the numeric value of an ASCII hex digit and whether ch is
// one.
func HexDigit(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	default:
		return 0, false
	}
}

// FoldHex4 folds four ASCII hex digits into a 16-bit value. It reports false
// if any of the four bytes is not a hex digit, without indicating which.
func FoldHex4(b []byte) (uint16, bool) {
	var v uint16
	for _, ch := range b[:4] {
		d, ok := HexDigit(ch)
		if !ok {
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	return v, true
}

// Simple maps a one-byte escape (the character following a backslash, other
// than 'u') to its decoded byte. ok is false for anything else, including
// 'u' itself, which requires the four-digit path above.
func Simple(ch byte) (byte, bool) {
	switch ch {
	case '"', '\\', '/':
		return ch, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

// Surrogate classification.
const (
	highSurrogateLo = 0xD800
	highSurrogateHi = 0xDBFF
	lowSurrogateLo  = 0xDC00
	lowSurrogateHi  = 0xDFFF
	surrogateBase   = 0x10000
)

// IsHighSurrogate reports whether u is a leading (high) surrogate unit.
func IsHighSurrogate(u uint16) bool { return u >= highSurrogateLo && u <= highSurrogateHi }

// IsLowSurrogate reports whether u is a trailing (low) surrogate unit.
func IsLowSurrogate(u uint16) bool { return u >= lowSurrogateLo && u <= lowSurrogateHi }

// Combine computes the code point encoded by a high/low surrogate pair.
// The caller must already know hi is a high surrogate and lo is a low
// surrogate.
func Combine(hi, lo uint16) rune {
	return rune((uint32(hi)-highSurrogateLo)<<10 + (uint32(lo) - lowSurrogateLo) + surrogateBase)
}

// EncodeRune appends the UTF-8 encoding of r to dst and returns the result.
func EncodeRune(dst []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(dst, buf[:n]...)
}
