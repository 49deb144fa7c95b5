// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson_test

import (
	"strings"
	"testing"

	"github.com/dsj/streamjson"
)

// TestMaxDepth checks that nesting beyond MaxDepth is rejected with
// Kind == TooDeep, and exactly at the limit it succeeds.
func TestMaxDepth(t *testing.T) {
	p := streamjson.New()
	p.MaxDepth = 4
	tr := new(tracer)

	input := strings.Repeat("[", 4) + strings.Repeat("]", 4)
	if _, err := p.WriteSome(tr, false, []byte(input)); err != nil {
		t.Fatalf("nesting exactly at MaxDepth failed: %v", err)
	}

	p2 := streamjson.New()
	p2.MaxDepth = 4
	tr2 := new(tracer)
	input2 := strings.Repeat("[", 5) + strings.Repeat("]", 5)
	_, err := p2.WriteSome(tr2, false, []byte(input2))
	if err == nil {
		t.Fatal("nesting beyond MaxDepth succeeded, want TooDeep")
	}
	perr, ok := err.(*streamjson.Error)
	if !ok {
		t.Fatalf("error %v is not a *streamjson.Error", err)
	}
	if perr.Kind != streamjson.TooDeep {
		t.Errorf("Kind = %v, want TooDeep", perr.Kind)
	}
}

// TestDefaultMaxDepth checks that a Parser constructed with New (MaxDepth
// left at its zero value) still enforces some bound rather than recursing
// or growing its suspension stack without limit.
func TestDefaultMaxDepth(t *testing.T) {
	p := streamjson.New()
	tr := new(tracer)
	input := strings.Repeat("[", 100000) + strings.Repeat("]", 100000)
	_, err := p.WriteSome(tr, false, []byte(input))
	if err == nil {
		t.Fatal("absurdly deep nesting succeeded, want TooDeep")
	}
	perr, ok := err.(*streamjson.Error)
	if !ok {
		t.Fatalf("error %v is not a *streamjson.Error", err)
	}
	if perr.Kind != streamjson.TooDeep {
		t.Errorf("Kind = %v, want TooDeep", perr.Kind)
	}
}
