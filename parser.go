// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jdom/internal/decnum"
	"github.com/creachadair/jdom/internal/escape"
	"github.com/creachadair/mds/stack"
	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// Event is the type of a structural event reported by a Parser.
type Event byte

// Constants defining the valid Event values.
const (
	NoEvent     Event = iota // no event has been reported
	StartObject              // the beginning of an object "{"
	EndObject                // the end of an object "}"
	StartArray               // the beginning of an array "["
	EndArray                 // the end of an array "]"
	KeyName                  // the key of an object member
	ValueString              // a string value
	ValueNumber              // a number value
	ValueTrue                // the constant true
	ValueFalse               // the constant false
	ValueNull                // the constant null
)

var eventStr = [...]string{
	NoEvent:     "none",
	StartObject: "StartObject",
	EndObject:   "EndObject",
	StartArray:  "StartArray",
	EndArray:    "EndArray",
	KeyName:     "KeyName",
	ValueString: "ValueString",
	ValueNumber: "ValueNumber",
	ValueTrue:   "ValueTrue",
	ValueFalse:  "ValueFalse",
	ValueNull:   "ValueNull",
}

func (e Event) String() string {
	if int(e) >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[e]
}

// parseState records what the parser expects to see next.
type parseState byte

const (
	expectRoot parseState = iota
	expectKeyOrEndObject
	expectKey
	expectColon
	expectMemberValue
	expectCommaOrEndObject
	expectValueOrEndArray
	expectElement
	expectCommaOrEndArray
	expectEnd
)

// A Parser is a pull parser that reports the structure of a single JSON
// document as a sequence of events. Containers are tracked on an explicit
// stack, so the depth of nesting is bounded only by memory.
//
// A Parser is not safe for concurrent use by multiple goroutines.
type Parser struct {
	s     *Scanner
	src   io.Reader
	stk   stack.Stack[Event] // StartObject or StartArray for each open container
	state parseState

	ev     Event
	tok    Token
	text   []byte
	loc    Location
	err    error
	eof    bool // the input after the document has been checked
	closed bool
}

// NewParser constructs a Parser that consumes a single JSON document from r.
// The parser takes ownership of r: if r implements io.Closer, it is closed
// when the parser is closed.
func NewParser(r io.Reader) *Parser { return &Parser{s: NewScanner(r), src: r} }

// HasNext reports whether a subsequent call to Next will report an event.
// Once the document is complete, HasNext checks that only whitespace remains
// in the input; if not, it records a syntax error and returns false.
// HasNext also returns false if the parser has failed or been closed. Use Err
// to distinguish the end of the document from an error.
func (p *Parser) HasNext() bool {
	if p.err != nil || p.closed {
		return false
	} else if p.state != expectEnd {
		return true
	}
	p.checkTrailing()
	return false
}

// Err reports the error that stopped the parser, if any.
func (p *Parser) Err() error { return p.err }

// Next advances the parser to the next event and reports it.
// After the document is complete, Next reports ErrNoMoreEvents.
// Syntax errors have concrete type *SyntaxError.
func (p *Parser) Next() (Event, error) {
	if p.closed {
		return NoEvent, ErrClosed
	} else if p.err != nil {
		return NoEvent, p.err
	}
	for {
		if p.state == expectEnd {
			if err := p.checkTrailing(); err != nil {
				return NoEvent, err
			}
			p.ev = NoEvent
			return NoEvent, ErrNoMoreEvents
		}

		tok, err := p.advance()
		if err != nil {
			return NoEvent, err
		}
		switch p.state {
		case expectRoot, expectElement, expectMemberValue:
			return p.beginValue(tok)

		case expectValueOrEndArray:
			if tok == RSquare {
				return p.endContainer(EndArray)
			}
			return p.beginValue(tok)

		case expectCommaOrEndArray:
			switch tok {
			case Comma:
				p.state = expectElement
				continue
			case RSquare:
				return p.endContainer(EndArray)
			}
			return NoEvent, p.grammarError("expected %v or %v, got %v", Comma, RSquare, tok)

		case expectKeyOrEndObject:
			if tok == RBrace {
				return p.endContainer(EndObject)
			} else if tok == String {
				return p.key()
			}
			return NoEvent, p.grammarError("expected %v or %v, got %v", String, RBrace, tok)

		case expectKey:
			if tok == String {
				return p.key()
			}
			return NoEvent, p.grammarError("expected %v, got %v", String, tok)

		case expectColon:
			if tok != Colon {
				return NoEvent, p.grammarError("expected %v, got %v", Colon, tok)
			}
			p.state = expectMemberValue

		case expectCommaOrEndObject:
			switch tok {
			case Comma:
				p.state = expectKey
				continue
			case RBrace:
				return p.endContainer(EndObject)
			}
			return NoEvent, p.grammarError("expected %v or %v, got %v", Comma, RBrace, tok)

		default:
			panic(fmt.Sprintf("invalid parser state %d", p.state))
		}
	}
}

// Event reports the most recent event returned by Next.
func (p *Parser) Event() Event { return p.ev }

// Depth reports the number of containers currently open.
func (p *Parser) Depth() int { return p.stk.Len() }

// Location reports the source location of the most recent event.
func (p *Parser) Location() Location { return p.loc }

// Text returns the undecoded text of the current event's token. The return
// value is only valid until the next call of Next.
func (p *Parser) Text() []byte { return p.text }

// Copy returns a copy of the undecoded text of the current event's token.
func (p *Parser) Copy() []byte { return append([]byte(nil), p.text...) }

// StringValue returns the decoded key or string value of the current event,
// or the text of a number. It reports ErrIllegalState for other events.
func (p *Parser) StringValue() (string, error) {
	switch p.ev {
	case KeyName, ValueString:
		dec, err := escape.Unquote(mem.B(p.text[1 : len(p.text)-1]))
		if err != nil {
			return "", err
		}
		return string(dec), nil
	case ValueNumber:
		return string(p.text), nil
	}
	return "", p.illegal("StringValue")
}

// IsIntegral reports whether the current number has no fractional part.
func (p *Parser) IsIntegral() (bool, error) {
	f, err := p.numForm("IsIntegral")
	if err != nil {
		return false, err
	}
	return f.IsIntegral(), nil
}

// Int returns the current number truncated to an int.
func (p *Parser) Int() (int, error) {
	v, err := p.Int64()
	return int(v), err
}

// Int64 returns the current number truncated to an int64. It reports an
// error if the integer part does not fit in an int64.
func (p *Parser) Int64() (int64, error) {
	f, err := p.numForm("Int64")
	if err != nil {
		return 0, err
	}
	v, err := f.Int64()
	if err != nil {
		return 0, fmt.Errorf("number %s out of range for int64", p.text)
	}
	return v, nil
}

// Int64Exact returns the current number as an int64. It reports an error if
// the number has a fractional part or does not fit in an int64.
func (p *Parser) Int64Exact() (int64, error) {
	if p.ev != ValueNumber {
		return 0, p.illegal("Int64Exact")
	}
	if p.tok == Integer {
		return strconv.ParseInt(string(p.text), 10, 64)
	}
	f, err := p.numForm("Int64Exact")
	if err != nil {
		return 0, err
	}
	v, err := f.Int64Exact()
	if errors.Is(err, decnum.ErrFraction) {
		return 0, fmt.Errorf("number %s is not an integer", p.text)
	} else if err != nil {
		return 0, fmt.Errorf("number %s out of range for int64", p.text)
	}
	return v, nil
}

func (p *Parser) numForm(method string) (decnum.Form, error) {
	if p.ev != ValueNumber {
		return decnum.Form{}, p.illegal(method)
	}
	return decnum.Parse(string(p.text))
}

// Float64 returns the current number as the nearest float64.
func (p *Parser) Float64() (float64, error) {
	if p.ev != ValueNumber {
		return 0, p.illegal("Float64")
	}
	f, err := strconv.ParseFloat(string(p.text), 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, err
	}
	return f, nil
}

// Decimal returns the current number as an exact decimal value.
func (p *Parser) Decimal() (decimal.Decimal, error) {
	if p.ev != ValueNumber {
		return decimal.Decimal{}, p.illegal("Decimal")
	}
	return decimal.NewFromString(string(p.text))
}

// Close closes the parser and, if it implements io.Closer, its input.
// Close is idempotent.
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// advance reads the next token. Reaching the end of input here is an error,
// since the document is not complete.
func (p *Parser) advance() (Token, error) {
	err := p.s.Next()
	if err == io.EOF {
		return Invalid, p.grammarError("unexpected end of input")
	} else if err != nil {
		return Invalid, p.setErr(err)
	}
	return p.s.Token(), nil
}

func (p *Parser) beginValue(tok Token) (Event, error) {
	switch tok {
	case LBrace:
		p.stk.Push(StartObject)
		p.state = expectKeyOrEndObject
		return p.emit(StartObject)
	case LSquare:
		p.stk.Push(StartArray)
		p.state = expectValueOrEndArray
		return p.emit(StartArray)
	case String:
		return p.scalar(ValueString)
	case Integer, Number:
		return p.scalar(ValueNumber)
	case True:
		return p.scalar(ValueTrue)
	case False:
		return p.scalar(ValueFalse)
	case Null:
		return p.scalar(ValueNull)
	}
	return NoEvent, p.grammarError("unexpected %v", tok)
}

func (p *Parser) scalar(ev Event) (Event, error) {
	p.afterValue()
	return p.emit(ev)
}

func (p *Parser) key() (Event, error) {
	p.state = expectColon
	return p.emit(KeyName)
}

func (p *Parser) endContainer(ev Event) (Event, error) {
	p.stk.Pop()
	p.afterValue()
	return p.emit(ev)
}

// afterValue updates the state after a complete value, based on the
// innermost open container.
func (p *Parser) afterValue() {
	switch p.stk.Top() {
	case StartObject:
		p.state = expectCommaOrEndObject
	case StartArray:
		p.state = expectCommaOrEndArray
	default:
		p.state = expectEnd
	}
}

func (p *Parser) emit(ev Event) (Event, error) {
	p.ev = ev
	p.tok = p.s.Token()
	p.text = p.s.Text()
	p.loc = p.s.Location()
	if p.state == expectEnd {
		// HasNext will advance the scanner past the final token.
		p.text = bytes.Clone(p.text)
	}
	return ev, nil
}

// checkTrailing verifies that nothing but whitespace follows the document.
func (p *Parser) checkTrailing() error {
	if p.eof || p.err != nil {
		return p.err
	}
	err := p.s.Next()
	if err == io.EOF {
		p.eof = true
		return nil
	} else if err != nil {
		return p.setErr(err)
	}
	return p.grammarError("unexpected %v after end of document", p.s.Token())
}

func (p *Parser) illegal(method string) error {
	return fmt.Errorf("%s not valid for event %v: %w", method, p.ev, ErrIllegalState)
}

func (p *Parser) setErr(err error) error {
	p.err = err
	return err
}

func (p *Parser) grammarError(msg string, args ...any) error {
	loc := p.s.Location()
	return p.setErr(&SyntaxError{
		Kind:     GrammarError,
		Location: loc.First,
		Offset:   loc.Pos,
		Message:  fmt.Sprintf(msg, args...),
	})
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var serr *SyntaxError
	return errors.As(err, &serr)
}
