// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"io"

	"github.com/creachadair/mds/stack"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, event type, and contents of the anchor.
type Anchor interface {
	Event() Event       // Returns the event type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key is
	// still quoted; the handler is responsible for unescaping key values if the
	// plain string is required (see jdom.Unquote).
	BeginMember(loc Anchor) error

	// End the current object member. The anchor is the last token of the
	// member's value.
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the event. String values are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	p *Parser
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{p: NewParser(r)} }

// NewStreamWithParser constructs a new Stream that consumes events from p.
func NewStreamWithParser(p *Parser) *Stream { return &Stream{p: p} }

// Parse parses a single JSON document from the input and delivers events to h
// until either an error occurs or the document is complete. It is an error
// for anything other than whitespace to follow the document.  In case of a
// syntax error, the returned error has type [*SyntaxError]. If a Handler
// method reports an error, that error is returned unmodified.
func (s *Stream) Parse(h Handler) error {
	// Each entry records whether the container is an object, so that the end
	// of a member value can be reported.
	var open stack.Stack[bool]
	endValue := func() error {
		if open.Top() {
			return h.EndMember(s.p)
		}
		return nil
	}

	for s.p.HasNext() {
		ev, err := s.p.Next()
		if err != nil {
			return err
		}
		switch ev {
		case StartObject:
			err = h.BeginObject(s.p)
			open.Push(true)
		case StartArray:
			err = h.BeginArray(s.p)
			open.Push(false)
		case EndObject, EndArray:
			open.Pop()
			if ev == EndObject {
				err = h.EndObject(s.p)
			} else {
				err = h.EndArray(s.p)
			}
			if err == nil {
				err = endValue()
			}
		case KeyName:
			err = h.BeginMember(s.p)
		default:
			err = h.Value(s.p)
			if err == nil {
				err = endValue()
			}
		}
		if err != nil {
			return err
		}
	}
	if err := s.p.Err(); err != nil {
		return err
	}
	h.EndOfInput(s.p)
	return nil
}

// Close closes the underlying parser.
func (s *Stream) Close() error { return s.p.Close() }
