// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "go4.org/mem"

// cursor is a non-owning windowed view over the chunk passed to the current
// WriteSome call. It is the streamjson analogue of jtree/scanner.go's rune
// reader, reworked from a pull-based bufio.Reader to a pushed []byte chunk:
// WriteSome never blocks on I/O, it only ever sees what the caller handed it
// for the duration of a single call.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) reset(data []byte) {
	c.data = data
	c.pos = 0
}

// remaining reports how many unread bytes are left in the chunk.
func (c *cursor) remaining() int { return len(c.data) - c.pos }

// peek returns the next unread byte. The caller must check remaining first;
// reading past the end is a programming error, as in jtree's cursor
// contract.
func (c *cursor) peek() byte { return c.data[c.pos] }

// peekAt returns the byte n positions ahead of the next unread byte.
func (c *cursor) peekAt(n int) byte { return c.data[c.pos+n] }

// advance consumes n bytes.
func (c *cursor) advance(n int) { c.pos += n }

// rest returns the unread remainder of the chunk. Callers that hand this
// slice to a Sink are passing a zero-copy view into the caller's own
// buffer; it must not be retained past the Sink call.
func (c *cursor) rest() []byte { return c.data[c.pos:] }

// clip truncates b to at most max bytes.
func clip(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}

// memOf wraps b for use with go4.org/mem's allocation-free comparison and
// rune-decoding helpers, grounded on jtree/scanner.go's use of mem.B/mem.S
// to compare candidate literal text against "true"/"false"/"null" without
// allocating a string copy.
func memOf(b []byte) mem.RO { return mem.B(b) }
