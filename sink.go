// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package streamjson

// A Sink receives parse events from a Parser, in strict document order. If a
// method reports an error, parsing stops and that error is returned to the
// caller of WriteSome. Errors from KeyPart, Key, StringPart and String are
// returned unchanged; errors from the other methods are wrapped in an *Error
// of kind Syntax.
//
// Byte slices passed to Sink methods are only valid for the duration of the
// call: they may be zero-copy views into the chunk most recently handed to
// WriteSome. A Sink that needs to retain a slice beyond the call must copy
// it. This mirrors the lifetime contract jtree.Handler documents for its
// Anchor argument.
type Sink interface {
	// BeginDocument reports the start of a new top-level value.
	BeginDocument() error

	// EndDocument reports that a complete top-level value has been parsed.
	EndDocument() error

	// BeginObject reports the opening brace of an object.
	BeginObject() error

	// EndObject reports the closing brace of an object. count is the number
	// of key/value pairs it contained.
	EndObject(count uint64) error

	// BeginArray reports the opening bracket of an array.
	BeginArray() error

	// EndArray reports the closing bracket of an array. count is the number
	// of elements it contained.
	EndArray(count uint64) error

	// KeyPart reports a non-terminal fragment of an object key.
	KeyPart(b []byte) error

	// Key reports the terminal (possibly empty) fragment of an object key,
	// ending the key.
	Key(b []byte) error

	// StringPart reports a non-terminal fragment of a string value.
	StringPart(b []byte) error

	// String reports the terminal (possibly empty) fragment of a string
	// value, ending the string.
	String(b []byte) error

	// Int64 reports a number that fits in a signed 64-bit integer and was
	// spelled without a fraction or exponent.
	Int64(v int64) error

	// Uint64 reports a number that overflows int64 but fits in uint64 and
	// was spelled without a fraction or exponent.
	Uint64(v uint64) error

	// Double reports a number spelled with a fraction and/or exponent, or
	// an integer too large for uint64 or too small for int64.
	Double(v float64) error

	// Bool reports a true/false literal.
	Bool(v bool) error

	// Null reports a null literal.
	Null() error
}

// NopSink implements Sink with no-op methods that always succeed. Embed it
// in a handler that only cares about a subset of events, in the style of
// jtree's testHandler overriding only the methods it needs.
type NopSink struct{}

func (NopSink) BeginDocument() error       { return nil }
func (NopSink) EndDocument() error         { return nil }
func (NopSink) BeginObject() error         { return nil }
func (NopSink) EndObject(uint64) error     { return nil }
func (NopSink) BeginArray() error          { return nil }
func (NopSink) EndArray(uint64) error      { return nil }
func (NopSink) KeyPart([]byte) error       { return nil }
func (NopSink) Key([]byte) error           { return nil }
func (NopSink) StringPart([]byte) error    { return nil }
func (NopSink) String([]byte) error        { return nil }
func (NopSink) Int64(int64) error          { return nil }
func (NopSink) Uint64(uint64) error        { return nil }
func (NopSink) Double(float64) error       { return nil }
func (NopSink) Bool(bool) error            { return nil }
func (NopSink) Null() error                { return nil }

// CountingSink is a reference Sink that only tallies how many times each
// event kind fired. It is used by cmd/streamjson when run without -trace,
// in the spirit of jtree/stream_test.go's testHandler.
type CountingSink struct {
	Documents, Objects, Arrays, Members     uint64
	Strings, Numbers, Bools, Nulls          uint64
	StringParts, KeyParts                   uint64
}

func (c *CountingSink) BeginDocument() error    { c.Documents++; return nil }
func (c *CountingSink) EndDocument() error      { return nil }
func (c *CountingSink) BeginObject() error      { c.Objects++; return nil }
func (c *CountingSink) EndObject(uint64) error  { return nil }
func (c *CountingSink) BeginArray() error       { c.Arrays++; return nil }
func (c *CountingSink) EndArray(uint64) error   { return nil }
func (c *CountingSink) KeyPart(b []byte) error  { c.KeyParts++; return nil }
func (c *CountingSink) Key(b []byte) error      { c.Members++; return nil }
func (c *CountingSink) StringPart(b []byte) error {
	c.StringParts++
	return nil
}
func (c *CountingSink) String(b []byte) error { c.Strings++; return nil }
func (c *CountingSink) Int64(int64) error     { c.Numbers++; return nil }
func (c *CountingSink) Uint64(uint64) error   { c.Numbers++; return nil }
func (c *CountingSink) Double(float64) error  { c.Numbers++; return nil }
func (c *CountingSink) Bool(bool) error       { c.Bools++; return nil }
func (c *CountingSink) Null() error           { c.Nulls++; return nil }
