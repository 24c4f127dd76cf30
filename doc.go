// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jdom implements a strict JSON scanner, a pull parser, a streaming
// event adaptor, and a generator.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jdom.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
// # Parsing
//
// The Parser type reports the structure of a single document as a sequence
// of events. Open containers are tracked on an explicit stack, so deeply
// nested input does not consume the call stack:
//
//	p := jdom.NewParser(input)
//	for p.HasNext() {
//	   ev, err := p.Next()
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Printf("Event: %v", ev)
//	}
//	if err := p.Err(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The scalar accessors (StringValue, Int64, Decimal, and so on) are valid only
// immediately after the corresponding event. Syntax errors have concrete type
// *jdom.SyntaxError, whose Kind separates malformed tokens (LexicalError) from
// misplaced ones (GrammarError).
//
// # Streaming
//
// The Stream type drives a Parser and reports its events to a Handler:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The Anchor passed to a handler method is only valid for the duration of
// that method call; the handler must copy any data it needs to retain.
//
// # Generating
//
// The Generator type is the dual of the Parser. It accepts a sequence of
// write calls and rejects any sequence that would not produce a single
// well-formed document:
//
//	g := jdom.NewGenerator(output)
//	g.StartObject()
//	g.Field("name", "value")
//	g.End()
//	if err := g.Close(); err != nil {
//	   log.Fatalf("Generate failed: %v", err)
//	}
//
// # Configuration
//
// A Config value selects pretty printing, the treatment of duplicate object
// keys, and the input encoding. Use its NewParser and NewGenerator methods to
// construct configured instances. A Config may be shared among goroutines; the
// parsers and generators it constructs may not.
package jdom
