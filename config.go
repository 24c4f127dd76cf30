// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdom

import (
	"fmt"
	"io"
	"strings"
)

// DuplicateKeyPolicy selects how repeated object keys are treated when a
// document is assembled into a tree. The event stream is not affected: a
// Parser always reports every key it reads.
type DuplicateKeyPolicy byte

const (
	KeepLast  DuplicateKeyPolicy = iota // the last value wins (default)
	KeepFirst                           // the first value wins
	RejectDuplicates                    // a repeated key is a grammar error
)

func (d DuplicateKeyPolicy) String() string {
	switch d {
	case KeepLast:
		return "LAST"
	case KeepFirst:
		return "FIRST"
	case RejectDuplicates:
		return "NONE"
	default:
		return fmt.Sprintf("DuplicateKeyPolicy(%d)", d)
	}
}

// ParseDuplicateKeyPolicy parses the name of a policy, one of "NONE",
// "FIRST", or "LAST" (case-insensitive).
func ParseDuplicateKeyPolicy(s string) (DuplicateKeyPolicy, error) {
	switch strings.ToUpper(s) {
	case "LAST":
		return KeepLast, nil
	case "FIRST":
		return KeepFirst, nil
	case "NONE":
		return RejectDuplicates, nil
	}
	return KeepLast, fmt.Errorf("unknown duplicate key policy %q", s)
}

// Names of the flags understood by ConfigFromMap.
const (
	FlagPretty        = "jdom.pretty"
	FlagIndent        = "jdom.indent"
	FlagDuplicateKeys = "jdom.duplicateKeys"
	FlagEncoding      = "jdom.encoding"
)

// Config carries options for constructing parsers, generators, and readers.
// A Config is a plain value and may be shared freely among goroutines.
// The zero value is ready for use and selects compact output, the KeepLast
// policy, and automatic detection of the input encoding.
type Config struct {
	// Pretty enables line breaks and indentation in generated output.
	Pretty bool

	// Indent is the indentation unit for pretty output. If empty, two spaces
	// are used.
	Indent string

	// DuplicateKeys selects the treatment of repeated object keys.
	DuplicateKeys DuplicateKeyPolicy

	// Encoding, if non-nil, fixes the encoding of byte inputs rather than
	// detecting it.
	Encoding *Encoding
}

// ConfigFromMap constructs a Config from a map of named flags. Flags not
// understood by this package are ignored. Recognized flags with a value of
// the wrong type or an unknown name report an error.
func ConfigFromMap(m map[string]any) (Config, error) {
	var cfg Config
	for key, val := range m {
		switch key {
		case FlagPretty:
			b, ok := val.(bool)
			if !ok {
				return cfg, fmt.Errorf("flag %s: got %T, want bool", key, val)
			}
			cfg.Pretty = b
		case FlagIndent:
			s, ok := val.(string)
			if !ok {
				return cfg, fmt.Errorf("flag %s: got %T, want string", key, val)
			}
			cfg.Indent = s
		case FlagDuplicateKeys:
			switch v := val.(type) {
			case DuplicateKeyPolicy:
				cfg.DuplicateKeys = v
			case string:
				p, err := ParseDuplicateKeyPolicy(v)
				if err != nil {
					return cfg, fmt.Errorf("flag %s: %w", key, err)
				}
				cfg.DuplicateKeys = p
			default:
				return cfg, fmt.Errorf("flag %s: got %T, want string", key, val)
			}
		case FlagEncoding:
			switch v := val.(type) {
			case Encoding:
				cfg.Encoding = &v
			case string:
				e, err := ParseEncoding(v)
				if err != nil {
					return cfg, fmt.Errorf("flag %s: %w", key, err)
				}
				cfg.Encoding = &e
			default:
				return cfg, fmt.Errorf("flag %s: got %T, want string", key, val)
			}
		}
	}
	return cfg, nil
}

// IndentUnit reports the indentation unit for pretty output.
func (c Config) IndentUnit() string {
	if c.Indent == "" {
		return "  "
	}
	return c.Indent
}

// NewParser constructs a Parser reading r as configured. Unless an explicit
// encoding is set, the encoding of r is detected from its first bytes.
func (c Config) NewParser(r io.Reader) (*Parser, error) {
	src, err := c.decode(r)
	if err != nil {
		return nil, err
	}
	p := NewParser(src)
	p.src = r
	return p, nil
}

// NewGenerator constructs a Generator writing to w as configured.
func (c Config) NewGenerator(w io.Writer) *Generator {
	g := NewGenerator(w)
	if c.Pretty {
		g.indent = c.IndentUnit()
	}
	return g
}

func (c Config) decode(r io.Reader) (io.Reader, error) {
	if c.Encoding != nil {
		return NewReaderWithEncoding(r, *c.Encoding), nil
	}
	return NewDecodingReader(r)
}
