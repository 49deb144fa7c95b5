// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson_test

import (
	"testing"

	"github.com/dsj/streamjson"
)

// TestChunkBoundaryInvariance checks that splitting a valid document at any
// byte offset and feeding it to WriteSome across two calls produces
// exactly the same trace as a single call with the whole input, no matter
// where the split falls — including inside a number, a \uXXXX escape, or a
// literal.
func TestChunkBoundaryInvariance(t *testing.T) {
	const input = `{"name":"aé😀b\u00e9\ud83d\ude00","nums":[0,-1,3.25e-2,18446744073709551615],"ok":true,"nil":null,"nested":{"x":[]}}`

	whole := new(tracer)
	if _, err := streamjson.New().WriteSome(whole, false, []byte(input)); err != nil {
		t.Fatalf("whole-input parse failed: %v", err)
	}
	want := whole.output()

	for split := 1; split < len(input); split++ {
		tr := new(tracer)
		p := streamjson.New()
		if _, err := p.WriteSome(tr, true, []byte(input[:split])); err != nil {
			t.Fatalf("split %d: first WriteSome failed: %v", split, err)
		}
		if _, err := p.WriteSome(tr, false, []byte(input[split:])); err != nil {
			t.Fatalf("split %d: second WriteSome failed: %v", split, err)
		}
		if got := tr.output(); got != want {
			t.Fatalf("split %d: output mismatch\nwant:\n%s\ngot:\n%s", split, want, got)
		}
	}
}

// TestManyTinyChunks feeds the document one byte at a time, the extreme
// case of the same property.
func TestManyTinyChunks(t *testing.T) {
	const input = `{"k":[1,2.5,"escApe",true,false,null]}`

	whole := new(tracer)
	if _, err := streamjson.New().WriteSome(whole, false, []byte(input)); err != nil {
		t.Fatalf("whole-input parse failed: %v", err)
	}
	want := whole.output()

	tr := new(tracer)
	p := streamjson.New()
	for i := 0; i < len(input); i++ {
		more := i < len(input)-1
		if _, err := p.WriteSome(tr, more, []byte{input[i]}); err != nil {
			t.Fatalf("byte %d (%q): WriteSome failed: %v", i, input[i], err)
		}
	}
	if got := tr.output(); got != want {
		t.Fatalf("byte-at-a-time output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

// TestConsumedTracksChunk checks that WriteSome always reports having
// consumed the entire chunk it was handed, except when it fails outright,
// since a suspended parser has nothing left to hand back.
func TestConsumedTracksChunk(t *testing.T) {
	const input = `{"a":1,"b":2}`
	p := streamjson.New()
	tr := new(tracer)
	for i := 0; i < len(input); i++ {
		more := i < len(input)-1
		n, err := p.WriteSome(tr, more, []byte{input[i]})
		if err != nil {
			t.Fatalf("byte %d: WriteSome failed: %v", i, err)
		}
		if n != 1 {
			t.Errorf("byte %d: consumed = %d, want 1", i, n)
		}
	}
}
