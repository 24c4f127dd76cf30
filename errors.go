// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoMoreEvents is reported by Parser.Next when the document has been
	// completely consumed.
	ErrNoMoreEvents = errors.New("no more parser events")

	// ErrIllegalState is reported when a method is called in a state that does
	// not permit it, such as a scalar accessor after a structural event.
	ErrIllegalState = errors.New("illegal state")

	// ErrClosed is reported by operations on a closed parser.
	ErrClosed = errors.New("parser is closed")
)

// ErrorKind distinguishes malformed tokens from misplaced ones.
type ErrorKind byte

const (
	LexicalError ErrorKind = iota + 1 // the input matches no token rule
	GrammarError                      // a valid token in an invalid position
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case GrammarError:
		return "grammar error"
	default:
		return "syntax error"
	}
}

// SyntaxError is the concrete type of errors reported by the scanner, the
// parser, and the stream.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol
	Offset   int
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// GenerationError reports an invalid sequence of calls to a Generator.
type GenerationError struct {
	Message string
	Err     error // the output error that accompanied the failure, if any
}

// Error satisfies the error interface.
func (g *GenerationError) Error() string {
	if g.Err != nil {
		return "generate: " + g.Message + ": " + g.Err.Error()
	}
	return "generate: " + g.Message
}

// Unwrap supports error wrapping.
func (g *GenerationError) Unwrap() error { return g.Err }

func generationErrorf(msg string, args ...any) error {
	return &GenerationError{Message: fmt.Sprintf(msg, args...)}
}

// NumberError reports a numeric value that has no JSON representation.
// The generator is not modified when it reports a NumberError, so the caller
// may retry the write with a different value.
type NumberError struct {
	Value float64
}

// Error satisfies the error interface.
func (n *NumberError) Error() string {
	return fmt.Sprintf("number %v has no JSON representation", n.Value)
}

// CheckFloat reports a *NumberError if f is NaN or infinite.
func CheckFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &NumberError{Value: f}
	}
	return nil
}
