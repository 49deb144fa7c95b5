// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "github.com/dsj/streamjson/internal/escape"

// strState holds the two UTF-16 code unit accumulators needed to decode a
// \uXXXX escape (and its low surrogate, if any), plus the bookkeeping
// needed to resume after any of its four hex digits.
type strState struct {
	u1, u2   uint16
	hexCount int  // hex digits folded into the active unit so far, 0..4
	wantLow  bool // the active unit is the low half of a surrogate pair
}

func (s *strState) reset() { *s = strState{} }

// beginString prepares the string lexer. The opening quote has already been
// consumed by the structural dispatcher.
func (p *Parser) beginString(isKey bool) {
	p.isKey = isKey
	p.scratch.reset()
	p.str.reset()
	p.state = stStrFast
}

// stepString advances the string lexer as far as the current chunk allows.
func (p *Parser) stepString(cur *cursor) (err error) {
	// Whenever the chunk runs out, including in the middle of an escape,
	// hand whatever scratch holds to the sink as a fragment.
	defer func() {
		if err == errNeedMore {
			if ferr := p.flushScratchPart(); ferr != nil {
				err = ferr
			}
		}
	}()
	for {
		switch p.state {
		case stStrFast:
			if err := p.stepStringFast(cur); err != nil {
				return err
			}

		case stStrEsc:
			if err := p.stepStringCopy(cur); err != nil {
				return err
			}

		case stStrEscIndicator:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			if err := p.beginEscape(cur); err != nil {
				return err
			}

		case stStrHex:
			if err := p.stepHexDigit(cur); err != nil {
				return err
			}

		case stStrSurBackslash:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			if cur.peek() != '\\' {
				return p.errorf(IllegalLeadingSurrogate, "high surrogate not followed by a low surrogate escape")
			}
			cur.advance(1)
			p.state = stStrSurU

		case stStrSurU:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			if cur.peek() != 'u' {
				return p.errorf(IllegalLeadingSurrogate, "high surrogate not followed by a low surrogate escape")
			}
			cur.advance(1)
			p.str.wantLow = true
			p.str.hexCount = 0
			p.state = stStrHex

		default:
			panic("streamjson: stepString called in non-string state")
		}
		if p.state == stDone || p.state == stEle3 || isStructuralState(p.state) {
			return nil // string completed; structural loop takes over
		}
	}
}

// stepStringFast scans a run of plain bytes and either delivers it
// zero-copy, switches into escape/copy mode, or fails on a bare control
// byte.
func (p *Parser) stepStringFast(cur *cursor) error {
	start := cur.pos
	for cur.remaining() > 0 {
		ch := cur.peek()
		if ch == '"' {
			if err := p.flushTerminal(cur.data[start:cur.pos]); err != nil {
				return err
			}
			cur.advance(1)
			return p.afterString()
		}
		if ch == '\\' {
			if cur.pos > start {
				if err := p.flushPart(cur.data[start:cur.pos]); err != nil {
					return err
				}
			}
			cur.advance(1)
			if cur.remaining() == 0 {
				p.state = stStrEscIndicator
				return errNeedMore
			}
			return p.beginEscape(cur)
		}
		if ch < 0x20 {
			return p.errorf(Syntax, "unescaped control byte %#x in string", ch)
		}
		cur.advance(1)
	}
	if cur.pos > start {
		if err := p.flushPart(cur.data[start:cur.pos]); err != nil {
			return err
		}
	}
	return errNeedMore
}

// stepStringCopy is the main loop once any escape has been seen: the rest
// of the string (literal runs and decoded escapes alike) is assembled in
// scratch rather than delivered zero-copy.
func (p *Parser) stepStringCopy(cur *cursor) error {
	for cur.remaining() > 0 {
		ch := cur.peek()
		if ch == '"' {
			cur.advance(1)
			if err := p.flushScratchTerminal(); err != nil {
				return err
			}
			return p.afterString()
		}
		if ch == '\\' {
			cur.advance(1)
			if cur.remaining() == 0 {
				p.state = stStrEscIndicator
				return errNeedMore
			}
			if err := p.beginEscape(cur); err != nil {
				return err
			}
			if p.state != stStrEsc {
				return nil // escape moved into \u hex decoding; let stepString redispatch
			}
			continue
		}
		if ch < 0x20 {
			return p.errorf(Syntax, "unescaped control byte %#x in string", ch)
		}
		if p.scratch.room() == 0 {
			if err := p.flushScratchPart(); err != nil {
				return err
			}
		}
		// Bulk-copy the run of plain bytes up to the next quote, backslash,
		// control byte, or scratch capacity, rather than re-entering this
		// loop one byte at a time. ch itself is already known plain, so this
		// run is always at least 1 byte.
		run := clip(cur.rest(), p.scratch.room())
		n := plainRunLen(run)
		p.scratch.write(run[:n])
		cur.advance(n)
	}
	if err := p.flushScratchPart(); err != nil {
		return err
	}
	return errNeedMore
}

// beginEscape decodes the byte immediately following a backslash.
func (p *Parser) beginEscape(cur *cursor) error {
	ch := cur.peek()
	if dec, ok := escape.Simple(ch); ok {
		cur.advance(1)
		if p.scratch.room() == 0 {
			if err := p.flushScratchPart(); err != nil {
				return err
			}
		}
		p.scratch.writeByte(dec)
		p.state = stStrEsc
		return nil
	}
	if ch != 'u' {
		return p.errorf(Syntax, "invalid escape %q", ch)
	}
	cur.advance(1)
	p.str.wantLow = false
	p.str.hexCount = 0
	p.state = stStrHex
	return nil
}

// stepHexDigit folds one hex digit of a \uXXXX escape at a time, so the
// four-digit window can be split across any chunk boundary.
func (p *Parser) stepHexDigit(cur *cursor) error {
	// Fast path: all four digits are already available in this chunk, so
	// decode them in one call instead of one digit at a time.
	if p.str.hexCount == 0 && cur.remaining() >= 4 {
		v, ok := escape.FoldHex4(cur.data[cur.pos : cur.pos+4])
		if !ok {
			return p.errorf(ExpectedHexDigit, "invalid hex digit in \\u escape")
		}
		cur.advance(4)
		return p.finishHexUnit(v)
	}
	for p.str.hexCount < 4 {
		if cur.remaining() == 0 {
			return errNeedMore
		}
		d, ok := escape.HexDigit(cur.peek())
		if !ok {
			return p.errorf(ExpectedHexDigit, "invalid hex digit in \\u escape")
		}
		cur.advance(1)
		if p.str.wantLow {
			p.str.u2 = p.str.u2<<4 | uint16(d)
		} else {
			p.str.u1 = p.str.u1<<4 | uint16(d)
		}
		p.str.hexCount++
	}
	if p.str.wantLow {
		return p.finishHexUnit(p.str.u2)
	}
	return p.finishHexUnit(p.str.u1)
}

// finishHexUnit is called once all four digits of the current unit are
// known, whether via the bulk fast path or the one-at-a-time slow path.
func (p *Parser) finishHexUnit(v uint16) error {
	if p.str.wantLow {
		if !escape.IsLowSurrogate(v) {
			return p.errorf(IllegalLeadingSurrogate, "high surrogate not followed by a low surrogate escape")
		}
		if err := p.writeScratchRune(escape.Combine(p.str.u1, v)); err != nil {
			return err
		}
		p.str = strState{}
		p.state = stStrEsc
		return nil
	}
	if !p.str.wantLow {
		p.str.u1 = v
	}
	switch {
	case escape.IsHighSurrogate(v):
		p.state = stStrSurBackslash
		return nil
	case escape.IsLowSurrogate(v):
		return p.errorf(IllegalTrailingSurrogate, "lone low surrogate \\u%04x", v)
	default:
		if err := p.writeScratchRune(rune(v)); err != nil {
			return err
		}
		p.str = strState{}
		p.state = stStrEsc
		return nil
	}
}

func (p *Parser) writeScratchRune(r rune) error {
	if p.scratch.room() < 4 {
		if err := p.flushScratchPart(); err != nil {
			return err
		}
	}
	p.scratch.writeRune(r)
	return nil
}

func (p *Parser) flushScratchPart() error {
	if p.scratch.empty() {
		return nil
	}
	err := p.flushPart(p.scratch.bytes())
	p.scratch.reset()
	return err
}

func (p *Parser) flushScratchTerminal() error {
	b := p.scratch.bytes()
	return p.flushTerminalOwned(b)
}

// flushPart delivers a non-terminal fragment to the sink, as KeyPart or
// StringPart depending on p.isKey.
func (p *Parser) flushPart(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if p.isKey {
		return p.sink.KeyPart(b)
	}
	return p.sink.StringPart(b)
}

// flushTerminal delivers the terminal fragment of a zero-copy span
// ending the current key or string.
func (p *Parser) flushTerminal(b []byte) error {
	if p.isKey {
		return p.sink.Key(b)
	}
	return p.sink.String(b)
}

// flushTerminalOwned is flushTerminal for scratch-owned bytes.
func (p *Parser) flushTerminalOwned(b []byte) error {
	if p.isKey {
		return p.sink.Key(b)
	}
	return p.sink.String(b)
}

// afterString returns control to the structural parser once a string (key
// or value) has been fully delivered to the sink.
func (p *Parser) afterString() error {
	if p.isKey {
		return p.afterKey()
	}
	return p.afterValue()
}
