// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package streamjson implements an incremental, event-driven RFC 7159 JSON
// parser that can suspend at any byte boundary and resume when more input
// arrives.
//
// # Parsing
//
// The Parser type holds all of the state needed to resume a document that
// is still in progress. Construct one with New and feed it chunks of input
// with WriteSome, each call reporting events to a Sink:
//
//	p := streamjson.New()
//	for {
//	    chunk, more := nextChunk()
//	    if _, err := p.WriteSome(sink, more, chunk); err != nil {
//	        log.Fatalf("parse failed: %v", err)
//	    }
//	    if p.IsDone() || !more {
//	        break
//	    }
//	}
//
// WriteSome never blocks and never retains chunk after it returns: any span
// a Sink method needs beyond the call must be copied by the Sink itself.
// Once a document is complete, IsDone reports true and the Parser must be
// reset with Reset before it can parse another one.
//
// # Sinks
//
// The Sink interface receives parser events. Its methods correspond to the
// syntax of JSON values:
//
//	JSON construct        | Methods                           | Description
//	---------------------- | ---------------------------------- | -------------------------
//	document                | BeginDocument, EndDocument         | the whole input
//	object                  | BeginObject, EndObject             | { ... }
//	array                   | BeginArray, EndArray               | [ ... ]
//	string (key or value)   | Key, KeyPart, String, StringPart   | "..." (the *Part methods
//	                        |                                     | deliver a string too long
//	                        |                                     | or too escaped to hand
//	                        |                                     | back zero-copy)
//	number                  | Int64, Uint64, Double              | 1, -1, 1.5, 1e10
//	literal                 | Bool, Null                         | true, false, null
//
// String and key bytes passed to Key and String are, whenever possible,
// direct slices of the chunk passed to WriteSome rather than a copy; a Sink
// that needs to retain one must copy it before returning.
//
// # Errors
//
// A failed parse returns a *Error identifying the Kind of problem and the
// byte offset, in the document as a whole, at which it was detected.
package streamjson
