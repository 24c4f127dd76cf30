// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package pointer implements JSON Pointer (RFC 6901) over dom values.
//
// A Pointer is parsed from its string form and resolved against a document
// to obtain a Ref, a handle on one location of the tree. A Ref can fetch the
// value at its location or produce a new document with that location added,
// replaced, or removed. The original document is never modified; only the
// containers on the path from the root to the location are copied.
package pointer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors wrapped by an *Error.
var (
	ErrSyntax       = errors.New("invalid pointer syntax")
	ErrNotFound     = errors.New("member not found")
	ErrIndex        = errors.New("invalid array index")
	ErrRange        = errors.New("array index out of range")
	ErrNotContainer = errors.New("value is not an object or array")
	ErrRoot         = errors.New("operation not permitted on the root")
	ErrNotStructure = errors.New("document root must be an object or array")
	ErrNoValue      = errors.New("missing value")
)

// Error is the concrete type of errors reported by this package.
type Error struct {
	Op      string // the operation attempted, e.g., "get", "add"
	Pointer string // the pointer being processed
	Err     error  // the underlying error, usually one of the sentinels
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Pointer, e.Err)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

// AppendIndex is the reference token that denotes the position one past the
// last element of an array.
const AppendIndex = "-"

var (
	decoder = strings.NewReplacer("~1", "/", "~0", "~")
	encoder = strings.NewReplacer("~", "~0", "/", "~1")
)

// Escape encodes a reference token for inclusion in a pointer string.
func Escape(token string) string { return encoder.Replace(token) }

// Unescape decodes an escaped reference token. It reports ErrSyntax if the
// token contains a "~" not followed by "0" or "1".
func Unescape(token string) (string, error) {
	for i := strings.IndexByte(token, '~'); i >= 0; {
		if i+1 >= len(token) || (token[i+1] != '0' && token[i+1] != '1') {
			return "", ErrSyntax
		}
		j := strings.IndexByte(token[i+2:], '~')
		if j < 0 {
			break
		}
		i += j + 2
	}
	return decoder.Replace(token), nil
}

// A Pointer is a sequence of unescaped reference tokens. An empty Pointer
// refers to the root of a document.
type Pointer []string

// Parse parses the string form of a pointer. The string must be empty or
// begin with "/".
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	} else if s[0] != '/' {
		return nil, &Error{Op: "parse", Pointer: s, Err: ErrSyntax}
	}
	parts := strings.Split(s[1:], "/")
	for i, part := range parts {
		tok, err := Unescape(part)
		if err != nil {
			return nil, &Error{Op: "parse", Pointer: s, Err: err}
		}
		parts[i] = tok
	}
	return Pointer(parts), nil
}

// MustParse is as Parse, but panics on error.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// New constructs a Pointer from the given unescaped tokens.
func New(tokens ...string) Pointer { return Pointer(slices.Clone(tokens)) }

// String returns the escaped string form of p.
func (p Pointer) String() string {
	var sb strings.Builder
	for _, tok := range p {
		sb.WriteByte('/')
		sb.WriteString(Escape(tok))
	}
	return sb.String()
}

// IsRoot reports whether p refers to the root of a document.
func (p Pointer) IsRoot() bool { return len(p) == 0 }

// Append returns a new pointer with the given tokens added to p.
func (p Pointer) Append(tokens ...string) Pointer {
	out := make(Pointer, 0, len(p)+len(tokens))
	return append(append(out, p...), tokens...)
}

// Parent returns the pointer to the container of the location p refers to.
// The parent of the root is the root.
func (p Pointer) Parent() Pointer {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final reference token of p, or "" for the root.
func (p Pointer) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether the tokens of q are a prefix of the tokens of p.
// Every pointer has the root pointer as a prefix.
func (p Pointer) HasPrefix(q Pointer) bool {
	return len(q) <= len(p) && slices.Equal(p[:len(q)], q)
}

// Equal reports whether p and q have the same tokens.
func (p Pointer) Equal(q Pointer) bool { return slices.Equal(p, q) }
