// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Command streamjson drives a streamjson.Parser over a file or stdin,
// reading it in fixed-size chunks to exercise the incremental WriteSome
// API the way a long-lived network reader would.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dsj/streamjson"
)

var (
	chunkSize = flag.Int("chunk", 4096, "read buffer size in bytes")
	maxDepth  = flag.Int("max-depth", 0, "maximum object/array nesting depth (0 for the default)")
	traceAll  = flag.Bool("trace", false, "print every event to stdout as it is parsed, instead of a final count")
)

func main() {
	flag.Parse()

	var r io.Reader = os.Stdin
	if args := flag.Args(); len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("streamjson: %v", err)
		}
		defer f.Close()
		r = f
	} else if len(args) > 1 {
		log.Fatal("streamjson: at most one input file may be given")
	}

	p := streamjson.New()
	p.MaxDepth = *maxDepth

	var sink streamjson.Sink
	counts := new(streamjson.CountingSink)
	if *traceAll {
		sink = &traceSink{}
	} else {
		sink = counts
	}

	buf := make([]byte, *chunkSize)
	for !p.IsDone() {
		n, rerr := r.Read(buf)
		switch rerr {
		case nil:
			if _, err := p.WriteSome(sink, true, buf[:n]); err != nil {
				log.Fatalf("streamjson: %v", err)
			}
		case io.EOF:
			if _, err := p.WriteSome(sink, false, buf[:n]); err != nil {
				log.Fatalf("streamjson: %v", err)
			}
		default:
			log.Fatalf("streamjson: read: %v", rerr)
		}
		if rerr == io.EOF {
			break
		}
	}

	if !*traceAll {
		fmt.Printf("documents=%d objects=%d arrays=%d members=%d strings=%d numbers=%d bools=%d nulls=%d\n",
			counts.Documents, counts.Objects, counts.Arrays, counts.Members,
			counts.Strings, counts.Numbers, counts.Bools, counts.Nulls)
	}
}

// traceSink prints each event to stdout, for interactive inspection.
type traceSink struct{}

func (traceSink) BeginDocument() error { fmt.Println("BeginDocument"); return nil }
func (traceSink) EndDocument() error   { fmt.Println("EndDocument"); return nil }
func (traceSink) BeginObject() error   { fmt.Println("BeginObject"); return nil }
func (traceSink) EndObject(n uint64) error {
	fmt.Printf("EndObject %d\n", n)
	return nil
}
func (traceSink) BeginArray() error { fmt.Println("BeginArray"); return nil }
func (traceSink) EndArray(n uint64) error {
	fmt.Printf("EndArray %d\n", n)
	return nil
}
func (traceSink) KeyPart(b []byte) error    { fmt.Printf("KeyPart %q\n", b); return nil }
func (traceSink) Key(b []byte) error        { fmt.Printf("Key %q\n", b); return nil }
func (traceSink) StringPart(b []byte) error { fmt.Printf("StringPart %q\n", b); return nil }
func (traceSink) String(b []byte) error     { fmt.Printf("String %q\n", b); return nil }
func (traceSink) Int64(v int64) error       { fmt.Printf("Int64 %d\n", v); return nil }
func (traceSink) Uint64(v uint64) error     { fmt.Printf("Uint64 %d\n", v); return nil }
func (traceSink) Double(v float64) error    { fmt.Printf("Double %v\n", v); return nil }
func (traceSink) Bool(v bool) error         { fmt.Printf("Bool %v\n", v); return nil }
func (traceSink) Null() error               { fmt.Println("Null"); return nil }
