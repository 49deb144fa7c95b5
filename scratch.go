// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "github.com/dsj/streamjson/internal/escape"

// scratchCapacity is the fixed size of the escape-decode staging buffer.
const scratchCapacity = 2048

// scratch is the fixed-capacity UTF-8 staging area used while decoding
// escape sequences in a string. It is flushed as a *_part event whenever it
// fills, or when input runs out mid-escape, so a string of arbitrary length
// never needs to be buffered whole.
type scratch struct {
	buf [scratchCapacity]byte
	n   int
}

func (s *scratch) reset() { s.n = 0 }

func (s *scratch) empty() bool { return s.n == 0 }

// room reports how many more bytes can be staged before a flush is needed.
func (s *scratch) room() int { return len(s.buf) - s.n }

func (s *scratch) writeByte(b byte) { s.buf[s.n] = b; s.n++ }

func (s *scratch) write(b []byte) { s.n += copy(s.buf[s.n:], b) }

// writeRune appends the UTF-8 encoding of r, which the caller must have
// already verified fits in the remaining room (at most 4 bytes for any
// rune, so callers flush whenever room() < 4 before decoding an escape).
func (s *scratch) writeRune(r rune) {
	dst := escape.EncodeRune(s.buf[s.n:s.n], r)
	s.n += len(dst)
}

func (s *scratch) bytes() []byte { return s.buf[:s.n] }
