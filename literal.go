// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "go4.org/mem"

// litKind identifies which constant literal is being matched.
type litKind uint8

const (
	litNull litKind = iota
	litTrue
	litFalse
)

var litText = [...]string{
	litNull:  "null",
	litTrue:  "true",
	litFalse: "false",
}

// beginLiteral starts matching a null/true/false literal. first is the byte
// the structural dispatcher already peeked (but not consumed).
func (p *Parser) beginLiteral(first byte) {
	switch first {
	case 'n':
		p.lit.kind = litNull
	case 't':
		p.lit.kind = litTrue
	case 'f':
		p.lit.kind = litFalse
	}
	p.lit.pos = 0
	p.state = stLiteral
}

type litState struct {
	kind litKind
	pos  int
}

// stepLiteral matches the remaining bytes of the literal named by p.lit.kind,
// with a fast path that matches the whole remaining suffix in one pass when
// the chunk holds enough bytes, grounded on jtree/scanner.go's scanName.
func (p *Parser) stepLiteral(cur *cursor) error {
	want := litText[p.lit.kind]

	// Fast path: the rest of the literal is entirely within this chunk, so
	// compare it in one allocation-free shot instead of byte at a time,
	// grounded on jtree/scanner.go's scanName using mem.B/mem.S to check a
	// candidate name against "true"/"false"/"null".
	if rest := want[p.lit.pos:]; cur.remaining() >= len(rest) {
		if !memOf(cur.data[cur.pos:cur.pos+len(rest)]).Equal(mem.S(rest)) {
			return p.errorf(Syntax, "invalid literal, want %q", want)
		}
		cur.advance(len(rest))
		p.lit.pos = len(want)
	}

	for p.lit.pos < len(want) {
		if cur.remaining() == 0 {
			return errNeedMore
		}
		if cur.peek() != want[p.lit.pos] {
			return p.errorf(Syntax, "invalid literal, want %q", want)
		}
		cur.advance(1)
		p.lit.pos++
	}
	switch p.lit.kind {
	case litNull:
		if err := p.emitValue(p.sink.Null); err != nil {
			return err
		}
	case litTrue:
		if err := p.emitValue(func() error { return p.sink.Bool(true) }); err != nil {
			return err
		}
	case litFalse:
		if err := p.emitValue(func() error { return p.sink.Bool(false) }); err != nil {
			return err
		}
	}
	return p.afterValue()
}
