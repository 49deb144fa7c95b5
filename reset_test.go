// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/dsj/streamjson"
)

// TestReset checks that a Parser that has finished (or failed) a document
// behaves exactly like a fresh one after Reset.
func TestReset(t *testing.T) {
	p := streamjson.New()
	tr := new(tracer)
	if _, err := p.WriteSome(tr, false, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	if !p.IsDone() {
		t.Fatal("IsDone() = false after a complete document")
	}

	p.Reset()
	if p.IsDone() {
		t.Fatal("IsDone() = true immediately after Reset")
	}

	tr2 := new(tracer)
	if _, err := p.WriteSome(tr2, false, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("second parse failed: %v", err)
	}
	if diff := diffStrings("\nBeginArray\nInt64 1\nInt64 2\nInt64 3\nEndArray 3\n.", tr2.output()); diff != "" {
		t.Errorf("second parse output (-want +got)\n%s", diff)
	}
}

// TestResetAfterError checks that a Parser left mid-error can still be
// reused after Reset, rather than remaining permanently wedged.
func TestResetAfterError(t *testing.T) {
	p := streamjson.New()
	tr := new(tracer)
	if _, err := p.WriteSome(tr, true, []byte(`{bad`)); err == nil {
		t.Fatal("WriteSome succeeded, want a syntax error")
	}

	p.Reset()
	tr2 := new(tracer)
	if _, err := p.WriteSome(tr2, false, []byte(`true`)); err != nil {
		t.Fatalf("parse after Reset failed: %v", err)
	}
	if !p.IsDone() {
		t.Fatal("IsDone() = false after a complete document")
	}
}

// TestWriteSomeAfterDoneErrors documents that calling WriteSome again
// without an intervening Reset is a caller error, reported as a plain
// error distinct from the *Error Kind taxonomy.
func TestWriteSomeAfterDoneErrors(t *testing.T) {
	p := streamjson.New()
	tr := new(tracer)
	if _, err := p.WriteSome(tr, false, []byte(`null`)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := p.WriteSome(tr, false, []byte(`null`)); err == nil {
		t.Error("second WriteSome after done succeeded, want an error")
	}
}

// TestNilSinkPanics checks that a nil Sink is treated as a programming
// error rather than silently discarding events, in the style of
// mds/mtest.MustPanic's use in jtree/jwcc's conversion-contract tests.
func TestNilSinkPanics(t *testing.T) {
	mtest.MustPanic(t, func() {
		streamjson.New().WriteSome(nil, true, []byte("1"))
	})
}
