// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

// isSpace reports whether ch is one of the four JSON whitespace bytes,
// grounded on jtree/scanner.go's isSpace.
func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// skipWhitespace advances cur past a run of whitespace bytes, in the style
// of other_examples/VictoriaMetrics-VictoriaMetrics__scanner.go's skipWS: a
// tight byte loop rather than a generic predicate call per byte, since this
// runs on every value boundary in the document.
func skipWhitespace(cur *cursor) {
	b := cur.data
	i := cur.pos
	n := len(b)
	for i < n {
		switch b[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			cur.pos = i
			return
		}
	}
	cur.pos = i
}

// plainRunLen reports the length of the leading run of bytes in b that
// contain no quote, backslash, or control byte, i.e. bytes stepStringCopy
// can copy verbatim without per-byte escape handling.
func plainRunLen(b []byte) int {
	for i, ch := range b {
		if ch == '"' || ch == '\\' || ch < 0x20 {
			return i
		}
	}
	return len(b)
}

// countDigits reports the number of leading ASCII decimal digits in b, up
// to cap bytes. It is used by the number lexer's bulk fast paths.
func countDigits(b []byte, cap int) int {
	if len(b) > cap {
		b = b[:cap]
	}
	for i, ch := range b {
		if ch < '0' || ch > '9' {
			return i
		}
	}
	return len(b)
}
