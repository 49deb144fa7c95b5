// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import (
	"errors"
	"fmt"

	"github.com/dsj/streamjson/internal/frame"
)

// defaultMaxDepth is the nesting limit applied when Parser.MaxDepth is left
// at its zero value.
const defaultMaxDepth = 512

// errDone is returned by WriteSome when it is called again after a document
// has already been fully delivered, without an intervening Reset. This is a
// caller-programming-error condition, distinct from the Kind taxonomy of
// *Error, so it is reported as a plain error.
var errDone = errors.New("streamjson: WriteSome called after document is done; call Reset first")

// Parser incrementally decodes a single RFC 7159 JSON document, suspending
// at any byte boundary and resuming on the next call to WriteSome. It holds
// no buffered copy of its input: every accumulator it needs to survive a
// suspend is a small, fixed-size field on the struct.
//
// A Parser is grounded on jtree/stream.go's Stream, but where Stream drives
// its own bufio.Reader and unwinds errors with panic/recover across a
// recursive-descent call stack, Parser is driven by the caller one chunk at
// a time and reports suspension and errors through ordinary return values,
// per the "resumable coroutine" and "sum types instead of exceptions"
// redesign notes.
type Parser struct {
	// MaxDepth bounds the combined object/array nesting depth. Zero means
	// defaultMaxDepth. It may be set any time before the first WriteSome
	// call after construction or Reset.
	MaxDepth int

	sink Sink
	more bool

	state State
	stack frame.Stack

	num numState
	str strState
	lit litState

	scratch scratch
	isKey   bool

	done bool

	// consumedTotal is the number of bytes consumed across all prior
	// WriteSome calls on this document, used to report byte offsets in
	// *Error that span chunk boundaries.
	consumedTotal int64

	// cur is set for the duration of a WriteSome call so that error-
	// reporting helpers can see how far into the current chunk parsing
	// has progressed.
	cur *cursor
}

// New returns a ready-to-use Parser.
func New() *Parser {
	p := &Parser{}
	p.Reset()
	return p
}

// IsDone reports whether a complete document has been delivered to the
// sink. Once true, WriteSome must not be called again until Reset.
func (p *Parser) IsDone() bool { return p.done }

// Reset returns the Parser to its initial state, ready to parse a new
// document from byte zero. MaxDepth is left as the caller set it.
func (p *Parser) Reset() {
	p.sink = nil
	p.more = false
	p.state = stStart
	p.stack.Reset()
	p.num.reset()
	p.str.reset()
	p.lit = litState{}
	p.scratch.reset()
	p.isKey = false
	p.done = false
	p.consumedTotal = 0
	p.cur = nil
}

func (p *Parser) maxDepth() int {
	if p.MaxDepth > 0 {
		return p.MaxDepth
	}
	return defaultMaxDepth
}

// WriteSome feeds the next chunk of input to the parser. sink receives the
// events produced while parsing this chunk; it need not be the same value
// across calls. more indicates whether additional chunks will follow this
// one: when false, a partial token or an open container at end of input is
// reported as an Incomplete error rather than silently suspended.
//
// WriteSome returns the number of leading bytes of data it consumed. On a
// non-nil error, consumed still reports how far parsing got before failing;
// the parser must not be reused (except via Reset) after an error.
func (p *Parser) WriteSome(sink Sink, more bool, data []byte) (consumed int, err error) {
	if p.done {
		return 0, errDone
	}
	p.sink = sink
	p.more = more

	cur := &cursor{}
	cur.reset(data)
	p.cur = cur

	err = p.run(cur)
	p.consumedTotal += int64(cur.pos)
	p.cur = nil

	if err == errNeedMore {
		if !more {
			return cur.pos, p.errorf(Incomplete, "input ended with an incomplete token or an unclosed container")
		}
		return cur.pos, nil
	}
	return cur.pos, err
}

// run drives the state machine as far as cur allows, dispatching to the
// structural, string, number, or literal stepper according to the current
// state.
func (p *Parser) run(cur *cursor) error {
	for {
		var err error
		switch {
		case p.state == stDone:
			return nil
		case p.state == stStart || isStructuralState(p.state):
			err = p.stepStructural(cur)
		case p.state == stLiteral:
			err = p.stepLiteral(cur)
		case isStringState(p.state):
			err = p.stepString(cur)
		case isNumberState(p.state):
			err = p.stepNumber(cur)
		default:
			panic("streamjson: unknown parser state")
		}
		if err != nil {
			return err
		}
	}
}

// stepStructural performs exactly one structural transition: skipping
// whitespace, matching a delimiter, or dispatching into a value's lexer. It
// returns to run's loop after each transition rather than looping
// internally, so run always re-checks p.state (which may have become a
// string/number/literal sub-state) before dispatching again.
func (p *Parser) stepStructural(cur *cursor) error {
	switch p.state {
	case stStart:
		if err := p.sink.BeginDocument(); err != nil {
			return p.sinkErr(err)
		}
		p.state = stEle1
		return nil

	case stEle1:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		return p.dispatchValue(cur)

	case stEle3:
		skipWhitespace(cur)
		if cur.remaining() > 0 {
			return p.errorf(Syntax, "unexpected trailing data after top-level value: %q", cur.peek())
		}
		if !p.more {
			if err := p.sink.EndDocument(); err != nil {
				return p.sinkErr(err)
			}
			p.state = stDone
			p.done = true
			return nil
		}
		return errNeedMore

	case stObjOpen:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		if cur.peek() == '}' {
			cur.advance(1)
			return p.closeContainer()
		}
		if cur.peek() != '"' {
			return p.errorf(Syntax, "expected string key or '}', got %q", cur.peek())
		}
		cur.advance(1)
		p.beginString(true)
		return p.stepString(cur)

	case stObjBeforeColon:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		if cur.peek() != ':' {
			return p.errorf(Syntax, "expected ':' after object key, got %q", cur.peek())
		}
		cur.advance(1)
		p.state = stObjAfterColon
		return nil

	case stObjAfterColon:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		return p.dispatchValue(cur)

	case stObjAfterValue:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		switch cur.peek() {
		case '}':
			cur.advance(1)
			return p.closeContainer()
		case ',':
			cur.advance(1)
			p.state = stObjAfterComma
			return nil
		default:
			return p.errorf(Syntax, "expected ',' or '}', got %q", cur.peek())
		}

	case stObjAfterComma:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		if cur.peek() != '"' {
			return p.errorf(Syntax, "expected string key, got %q", cur.peek())
		}
		cur.advance(1)
		p.beginString(true)
		return p.stepString(cur)

	case stArrOpen:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		if cur.peek() == ']' {
			cur.advance(1)
			return p.closeContainer()
		}
		return p.dispatchValue(cur)

	case stArrAfterValue:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		switch cur.peek() {
		case ']':
			cur.advance(1)
			return p.closeContainer()
		case ',':
			cur.advance(1)
			p.state = stArrAfterComma
			return nil
		default:
			return p.errorf(Syntax, "expected ',' or ']', got %q", cur.peek())
		}

	case stArrAfterComma:
		skipWhitespace(cur)
		if cur.remaining() == 0 {
			return errNeedMore
		}
		return p.dispatchValue(cur)

	default:
		panic("streamjson: stepStructural called in non-structural state")
	}
}

// dispatchValue looks at (but does not consume, except for the leading
// delimiter of a container or string) the next byte to decide which value
// lexer to enter.
func (p *Parser) dispatchValue(cur *cursor) error {
	switch ch := cur.peek(); {
	case ch == 'n' || ch == 't' || ch == 'f':
		p.beginLiteral(ch)
		return p.stepLiteral(cur)

	case ch == '"':
		cur.advance(1)
		p.beginString(false)
		return p.stepString(cur)

	case ch == '{':
		cur.advance(1)
		return p.openContainer(true)

	case ch == '[':
		cur.advance(1)
		return p.openContainer(false)

	case ch == '-' || isDigit(ch):
		p.beginNumber()
		p.state = stNumSign
		return p.stepNumber(cur)

	default:
		return p.errorf(Syntax, "unexpected byte %q, expected a value", ch)
	}
}

// openContainer pushes a new frame and emits the matching Begin event.
func (p *Parser) openContainer(isObject bool) error {
	if p.stack.Len()+1 > p.maxDepth() {
		return p.errorf(TooDeep, "nesting exceeds max depth %d", p.maxDepth())
	}
	if p.stack.Len() == 0 {
		p.stack.Reserve(p.maxDepth())
	}
	if isObject {
		if err := p.sink.BeginObject(); err != nil {
			return p.sinkErr(err)
		}
		p.stack.Push(frame.Object())
		p.state = stObjOpen
	} else {
		if err := p.sink.BeginArray(); err != nil {
			return p.sinkErr(err)
		}
		p.stack.Push(frame.Array())
		p.state = stArrOpen
	}
	return nil
}

// closeContainer pops the current frame and emits the matching End event,
// carrying the member/element count accumulated in the frame.
func (p *Parser) closeContainer() error {
	f := p.stack.Pop()
	if f.IsObject {
		if err := p.sink.EndObject(f.Count); err != nil {
			return p.sinkErr(err)
		}
	} else {
		if err := p.sink.EndArray(f.Count); err != nil {
			return p.sinkErr(err)
		}
	}
	return p.afterValue()
}

// afterValue transitions out of a just-completed value, whether it is the
// sole top-level value or a member/element of the container on top of the
// stack. It is called by every value lexer (literal, number, string,
// container close) once its terminal event has been delivered.
func (p *Parser) afterValue() error {
	if p.stack.Empty() {
		p.state = stEle3
		return nil
	}
	top := p.stack.Top()
	top.Count++
	if top.IsObject {
		p.state = stObjAfterValue
	} else {
		p.state = stArrAfterValue
	}
	return nil
}

// afterKey transitions out of a just-completed object key.
func (p *Parser) afterKey() error {
	p.state = stObjBeforeColon
	return nil
}

// emitValue calls fn, which is expected to deliver exactly one terminal
// value event to the sink, translating any error it returns into a sink
// rejection *Error.
func (p *Parser) emitValue(fn func() error) error {
	if err := fn(); err != nil {
		return p.sinkErr(err)
	}
	return nil
}

// errorf builds a syntax/format *Error at the parser's current byte offset,
// which spans both bytes consumed in prior WriteSome calls and bytes
// consumed so far in the call in progress.
func (p *Parser) errorf(kind Kind, format string, args ...any) error {
	offset := p.consumedTotal
	if p.cur != nil {
		offset += int64(p.cur.pos)
	}
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// sinkErr wraps an error returned by a Sink method so that sink rejections
// abort parsing with the sink's error attached.
func (p *Parser) sinkErr(err error) error {
	offset := p.consumedTotal
	if p.cur != nil {
		offset += int64(p.cur.pos)
	}
	return &Error{Kind: Syntax, Offset: offset, Msg: "sink rejected event", err: err}
}
