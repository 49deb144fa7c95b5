// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "math"

// numState holds the partial-number accumulator, plus a few bookkeeping
// counters that only matter while a number is actively being lexed (they do
// not need to survive past finalization, but they do need to survive a
// suspend/resume cycle, so they live here rather than as locals).
//
// Grounded on jtree/scanner.go's scanNumber, which only needs to capture a
// span of text; this lexer additionally classifies and accumulates the
// value inline, because the sink is told the number's type and decoded
// value directly rather than a raw token.
type numState struct {
	mant uint64
	bias int32
	exp  int32
	frac bool // explicit exponent is negative
	neg  bool // number itself is negative

	intDigits   int  // integer-part digits consumed so far
	leadingZero bool // the first integer digit was '0'
	overflowed  bool // integer mantissa exceeded its signed/unsigned cap
	fracDigits  int  // fractional digits consumed so far
	isFloat     bool // a '.' and/or exponent was seen

	expSign bool // an explicit '+'/'-' was seen before the first exponent digit
}

func (n *numState) reset() { *n = numState{} }

// mantissa overflow thresholds for the signed and unsigned integer paths.
const (
	negMantCeil = 922337203685477580
	posMantCeil = 1844674407370955161
)

// fracMantCeil is 2^53 - 1, the largest mantissa the fractional-digit path
// keeps accumulating into; digits beyond it are still validated but dropped.
const fracMantCeil = 1<<53 - 1

// expCeil bounds the decimal exponent magnitude before it is rejected.
const expCeil = 214748364

// beginNumber initializes p.num for a number starting at the byte the
// structural dispatcher already peeked (but has not yet consumed).
func (p *Parser) beginNumber() {
	p.num.reset()
}

// stepNumber advances the number lexer as far as the current chunk allows.
// It returns errNeedMore (with p.state and p.num already recording where to
// resume) when the chunk runs out mid-number, or a *Error for a malformed number, or nil
// once the number is fully lexed, classified, and delivered to the sink.
func (p *Parser) stepNumber(cur *cursor) error {
	for {
		switch p.state {
		case stNumSign:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			if cur.peek() == '-' {
				p.num.neg = true
				cur.advance(1)
			}
			p.state = stNumIntFirst

		case stNumIntFirst:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			ch := cur.peek()
			if !isDigit(ch) {
				return p.errorf(Syntax, "expected digit, got %q", ch)
			}
			cur.advance(1)
			p.acceptIntDigit(ch)
			p.state = stNumInt

		case stNumInt:
			if p.num.leadingZero && p.num.intDigits == 1 {
				if cur.remaining() > 0 && isDigit(cur.peek()) {
					return p.errorf(Syntax, "extra leading zeroes")
				}
			} else {
				run := countDigits(cur.rest(), cur.remaining())
				for i := 0; i < run; i++ {
					ch := cur.peek()
					cur.advance(1)
					p.acceptIntDigit(ch)
				}
			}
			if cur.remaining() == 0 {
				if !p.more {
					return p.finishNumber()
				}
				return errNeedMore
			}
			switch cur.peek() {
			case '.':
				cur.advance(1)
				p.num.isFloat = true
				p.state = stNumFracFirst
			case 'e', 'E':
				cur.advance(1)
				p.num.isFloat = true
				p.state = stNumExpFirst
			default:
				return p.finishNumber()
			}

		case stNumFracFirst:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			ch := cur.peek()
			if !isDigit(ch) {
				return p.errorf(Syntax, "expected digit after decimal point, got %q", ch)
			}
			cur.advance(1)
			p.acceptFracDigit(ch)
			p.state = stNumFrac

		case stNumFrac:
			run := countDigits(cur.rest(), cur.remaining())
			for i := 0; i < run; i++ {
				ch := cur.peek()
				cur.advance(1)
				p.acceptFracDigit(ch)
			}
			if cur.remaining() == 0 {
				if !p.more {
					return p.finishNumber()
				}
				return errNeedMore
			}
			switch cur.peek() {
			case 'e', 'E':
				cur.advance(1)
				p.state = stNumExpFirst
			default:
				return p.finishNumber()
			}

		case stNumExpFirst:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			ch := cur.peek()
			if ch == '+' || ch == '-' {
				p.num.expSign = true
				p.num.frac = ch == '-'
				cur.advance(1)
				p.state = stNumExpDigitReq
				continue
			}
			if !isDigit(ch) {
				return p.errorf(Syntax, "expected sign or digit in exponent, got %q", ch)
			}
			cur.advance(1)
			if err := p.acceptExpDigit(ch); err != nil {
				return err
			}
			p.state = stNumExp

		case stNumExpDigitReq:
			if cur.remaining() == 0 {
				return errNeedMore
			}
			ch := cur.peek()
			if !isDigit(ch) {
				return p.errorf(Syntax, "missing exponent digits")
			}
			cur.advance(1)
			if err := p.acceptExpDigit(ch); err != nil {
				return err
			}
			p.state = stNumExp

		case stNumExp:
			for cur.remaining() > 0 && isDigit(cur.peek()) {
				ch := cur.peek()
				cur.advance(1)
				if err := p.acceptExpDigit(ch); err != nil {
					return err
				}
			}
			if cur.remaining() == 0 {
				if !p.more {
					return p.finishNumber()
				}
				return errNeedMore
			}
			return p.finishNumber()

		default:
			panic("streamjson: stepNumber called in non-number state")
		}
	}
}

// acceptIntDigit folds one integer-part digit into the mantissa, switching
// to a digit-counting overflow path once the mantissa can no longer grow.
func (p *Parser) acceptIntDigit(ch byte) {
	d := uint64(ch - '0')
	n := &p.num
	if n.intDigits == 0 {
		n.leadingZero = ch == '0'
	}
	n.intDigits++
	if n.overflowed {
		n.bias++
		return
	}
	ceil := uint64(posMantCeil)
	if n.neg {
		ceil = uint64(negMantCeil)
	}
	maxLastDigit := byte('5')
	if n.neg {
		maxLastDigit = '8'
	}
	if n.mant > ceil || (n.mant == ceil && ch > maxLastDigit) {
		n.overflowed = true
		n.bias++
		return
	}
	n.mant = n.mant*10 + d
}

// acceptFracDigit folds one fractional digit into the mantissa while it
// still fits in 2^53-1, and discards (but still requires ASCII-digit) any
// digit beyond that.
func (p *Parser) acceptFracDigit(ch byte) {
	n := &p.num
	n.fracDigits++
	if n.mant > fracMantCeil {
		return
	}
	n.mant = n.mant*10 + uint64(ch-'0')
	n.bias--
}

// acceptExpDigit folds one exponent digit, rejecting the number once the
// exponent magnitude would overflow.
func (p *Parser) acceptExpDigit(ch byte) error {
	n := &p.num
	d := int32(ch - '0')
	if n.exp > expCeil || (n.exp == expCeil && d > 7) {
		return p.errorf(ExponentOverflow, "decimal exponent too large")
	}
	n.exp = n.exp*10 + d
	return nil
}

// pow10 is a lookup table for 10^k, k in [-308, 308].
var pow10 = func() [617]float64 {
	var t [617]float64
	for i := range t {
		t[i] = math.Pow(10, float64(i-308))
	}
	return t
}()

func exp10(k int) float64 {
	if k >= -308 && k <= 308 {
		return pow10[k+308]
	}
	return math.Pow(10, float64(k))
}

// finishNumber classifies and emits the number just lexed, then returns the
// parser to structural dispatch.
func (p *Parser) finishNumber() error {
	n := &p.num
	var err error
	if !n.isFloat && !n.overflowed {
		if n.neg {
			// Two's-complement negation of the mantissa interpreted as an
			// unsigned 64-bit value; this correctly handles mant == 1<<63
			// (INT64_MIN's magnitude).
			err = p.emitValue(func() error { return p.sink.Int64(-int64(n.mant)) })
		} else if n.mant <= math.MaxInt64 {
			err = p.emitValue(func() error { return p.sink.Int64(int64(n.mant)) })
		} else {
			err = p.emitValue(func() error { return p.sink.Uint64(n.mant) })
		}
	} else {
		k := int(n.bias)
		if n.expSign || n.exp != 0 {
			if n.frac {
				k -= int(n.exp)
			} else {
				k += int(n.exp)
			}
		}
		v := float64(n.mant) * exp10(k)
		if n.neg {
			v = -v
		}
		err = p.emitValue(func() error { return p.sink.Double(v) })
	}
	if err != nil {
		return err
	}
	return p.afterValue()
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
