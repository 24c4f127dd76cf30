// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package patch

import (
	"fmt"

	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/pointer"
)

// OpError reports a malformed operation in a patch document.
type OpError struct {
	Index   int    // offset of the operation in the patch
	Op      string // the operation name, if known
	Message string
	Err     error // the underlying error, if any
}

func (e *OpError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("operation %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("operation %d (%s): %s", e.Index, e.Op, e.Message)
}

// Unwrap supports error wrapping.
func (e *OpError) Unwrap() error { return e.Err }

// ApplyError reports the failure of an operation while applying a patch.
type ApplyError struct {
	Index int       // offset of the failed operation in the patch
	Op    Operation // the failed operation
	Err   error     // the reason for the failure
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("operation %d (%v): %v", e.Index, e.Op, e.Err)
}

// Unwrap supports error wrapping.
func (e *ApplyError) Unwrap() error { return e.Err }

// TestError reports the failure of a test operation.
type TestError struct {
	Path pointer.Pointer
	Want dom.Value
	Got  dom.Value
}

func (e *TestError) Error() string {
	return fmt.Sprintf("test %q failed: got %s, want %s",
		e.Path, dom.Describe(e.Got), dom.Describe(e.Want))
}
