// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

import "errors"

// State identifies exactly where a suspended WriteSome call should resume.
// Collapsing every lexical and structural position into one resumable
// field, rather than an implicit call stack or goto label, is what lets
// WriteSome return between any two bytes of the input and pick back up
// later with no loss of context.
type State uint8

const (
	stStart State = iota // no document started yet
	stEle1               // skip whitespace before the top-level value
	stEle3               // skip whitespace after the top-level value
	stDone               // a complete document has been delivered

	// Object structural states. Parsing a member's key or value is handled
	// by dispatching into the string or value lexer rather than a state of
	// its own.
	stObjOpen        // just saw '{'; skip ws; next is '}' or a key
	stObjBeforeColon // finished a key; skip ws; next must be ':'
	stObjAfterColon  // consumed ':'; skip ws; next is the member's value
	stObjAfterValue  // finished a value; skip ws; next is ',' or '}'
	stObjAfterComma  // consumed ','; skip ws; next is a key

	// Array structural states.
	stArrOpen       // just saw '['; skip ws; next is ']' or a value
	stArrAfterValue // finished a value; skip ws; next is ',' or ']'
	stArrAfterComma // consumed ','; skip ws; next is a value

	stLiteral // matching the remaining bytes of true/false/null

	// String lexer sub-states.
	stStrFast         // scanning a zero-copy unescaped run
	stStrEsc          // copying literal bytes and decoded escapes into scratch
	stStrEscIndicator // '\' was consumed but its indicator byte was not yet available
	stStrHex          // reading a \uXXXX escape's four hex digits, one at a time
	stStrSurBackslash // a high surrogate was decoded; requiring the low surrogate's '\'
	stStrSurU         // requiring the low surrogate escape's 'u'

	// Number lexer sub-states.
	stNumSign        // optional leading '-'
	stNumIntFirst    // the required first integer digit
	stNumInt         // remaining integer digits, or '.'/'e'/terminator
	stNumFracFirst   // the required first digit after '.'
	stNumFrac        // remaining fraction digits, or 'e'/terminator
	stNumExpFirst    // sign-or-digit immediately after 'e'/'E'
	stNumExpDigitReq // the required first digit after an explicit sign
	stNumExp         // remaining exponent digits, or terminator
)

// isStructuralState reports whether s is one of the states the structural
// parser dispatches from directly, as opposed to a lexical sub-state of a
// string, number, or literal token.
func isStructuralState(s State) bool {
	switch s {
	case stEle1, stEle3, stObjOpen, stObjBeforeColon, stObjAfterColon,
		stObjAfterValue, stObjAfterComma, stArrOpen, stArrAfterValue, stArrAfterComma:
		return true
	default:
		return false
	}
}

// isStringState reports whether s is one of the string lexer's sub-states.
func isStringState(s State) bool {
	switch s {
	case stStrFast, stStrEsc, stStrEscIndicator, stStrHex, stStrSurBackslash, stStrSurU:
		return true
	default:
		return false
	}
}

// isNumberState reports whether s is one of the number lexer's sub-states.
func isNumberState(s State) bool {
	switch s {
	case stNumSign, stNumIntFirst, stNumInt, stNumFracFirst, stNumFrac,
		stNumExpFirst, stNumExpDigitReq, stNumExp:
		return true
	default:
		return false
	}
}

// errNeedMore is an internal sentinel: a lexical or structural step ran out
// of chunk before it could finish. It is translated into either a clean
// "consumed what we could" return or an Incomplete *Error by WriteSome,
// depending on whether the caller signaled more input is coming, and it
// never escapes the package.
var errNeedMore = errors.New("streamjson: need more input")
