// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dsj/streamjson"
	"github.com/google/go-cmp/cmp"
)

// tracer is a Sink that renders each event as one line of text, in the
// style of jtree/stream_test.go's testHandler, so a whole parse can be
// checked against a want string in one diff.
type tracer struct {
	lines []string
	key   strings.Builder
	str   strings.Builder
}

func (t *tracer) pr(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

func (t *tracer) BeginDocument() error { return nil }
func (t *tracer) EndDocument() error   { t.pr("."); return nil }

func (t *tracer) BeginObject() error        { t.pr("BeginObject"); return nil }
func (t *tracer) EndObject(n uint64) error  { t.pr("EndObject %d", n); return nil }
func (t *tracer) BeginArray() error         { t.pr("BeginArray"); return nil }
func (t *tracer) EndArray(n uint64) error   { t.pr("EndArray %d", n); return nil }

func (t *tracer) KeyPart(b []byte) error { t.key.Write(b); return nil }
func (t *tracer) Key(b []byte) error {
	t.key.Write(b)
	t.pr("Key %q", t.key.String())
	t.key.Reset()
	return nil
}

func (t *tracer) StringPart(b []byte) error { t.str.Write(b); return nil }
func (t *tracer) String(b []byte) error {
	t.str.Write(b)
	t.pr("String %q", t.str.String())
	t.str.Reset()
	return nil
}

func (t *tracer) Int64(v int64) error   { t.pr("Int64 %d", v); return nil }
func (t *tracer) Uint64(v uint64) error { t.pr("Uint64 %d", v); return nil }
func (t *tracer) Double(v float64) error {
	t.pr("Double %v", v)
	return nil
}
func (t *tracer) Bool(v bool) error { t.pr("Bool %v", v); return nil }
func (t *tracer) Null() error       { t.pr("Null"); return nil }

func (t *tracer) output() string { return strings.Join(t.lines, "\n") }

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

func TestParserScenarios(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`null`, `
Null
.`},

		{`  42  `, `
Int64 42
.`},

		{`-0`, `
Int64 0
.`},

		{`3.25e1`, `
Double 32.5
.`},

		{`18446744073709551615`, `
Uint64 18446744073709551615
.`},

		{`-9223372036854775808`, `
Int64 -9223372036854775808
.`},

		{`""`, `
String ""
.`},

		{`"a\tbAc"`, `
String "a\tbAc"
.`},

		{`"😀"`, `
String "😀"
.`},

		{`{}`, `
BeginObject
EndObject 0
.`},

		{`[]`, `
BeginArray
EndArray 0
.`},

		{`{"a":1,"b":[true,null]}`, `
BeginObject
Key "a"
Int64 1
Key "b"
BeginArray
Bool true
Null
EndArray 2
EndObject 2
.`},
	}

	for _, test := range tests {
		tr := new(tracer)
		p := streamjson.New()
		if _, err := p.WriteSome(tr, false, []byte(test.input)); err != nil {
			t.Errorf("input %q: WriteSome failed: %v", test.input, err)
			continue
		}
		if diff := diffStrings(test.want, tr.output()); diff != "" {
			t.Errorf("input %q: (-want +got)\n%s", test.input, diff)
		}
	}
}

func TestTrailingDataError(t *testing.T) {
	tr := new(tracer)
	p := streamjson.New()
	_, err := p.WriteSome(tr, false, []byte("true false"))
	if err == nil {
		t.Fatal("WriteSome succeeded, want a trailing-data error")
	}
	var perr *streamjson.Error
	if !errorsAs(err, &perr) {
		t.Fatalf("error %v is not a *streamjson.Error", err)
	}
	if perr.Kind != streamjson.Syntax {
		t.Errorf("Kind = %v, want Syntax", perr.Kind)
	}
}

func TestIncompleteAtEOF(t *testing.T) {
	tests := []string{`{`, `[1,`, `"abc`, `tru`, `1.`, `-`}
	for _, input := range tests {
		tr := new(tracer)
		p := streamjson.New()
		_, err := p.WriteSome(tr, false, []byte(input))
		if err == nil {
			t.Errorf("input %q: WriteSome succeeded, want Incomplete", input)
			continue
		}
		var perr *streamjson.Error
		if !errorsAs(err, &perr) {
			t.Errorf("input %q: error %v is not a *streamjson.Error", input, err)
			continue
		}
		if perr.Kind != streamjson.Incomplete {
			t.Errorf("input %q: Kind = %v, want Incomplete", input, perr.Kind)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []string{`{,}`, `[1 2]`, `{"a" 1}`, `{"a":1,}`, `[1,]`, `tru3`, `01`, `--1`}
	for _, input := range tests {
		tr := new(tracer)
		p := streamjson.New()
		if _, err := p.WriteSome(tr, true, []byte(input)); err == nil {
			t.Errorf("input %q: WriteSome succeeded, want a syntax error", input)
		}
	}
}

// errorsAs is a tiny local helper so this file does not need to import
// "errors" solely for one call.
func errorsAs(err error, target **streamjson.Error) bool {
	if e, ok := err.(*streamjson.Error); ok {
		*target = e
		return true
	}
	return false
}
