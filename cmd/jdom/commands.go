// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/jdom"
	"github.com/creachadair/jdom/dom"
	"github.com/creachadair/jdom/mergepatch"
	"github.com/creachadair/jdom/patch"
	"github.com/creachadair/jdom/pointer"
	"github.com/tailscale/hujson"
)

// env is the environment shared by all commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg       jdom.Config
	hujson    bool
	log       *slog.Logger
	stdinUsed bool
}

// read parses the document named by path, or standard input if path is
// empty or "-".
func (e *env) read(path string) (dom.Value, error) {
	var r io.Reader
	name := path
	if path == "" || path == "-" {
		if e.stdinUsed {
			return nil, errors.New("standard input can only be read once")
		}
		e.stdinUsed = true
		r, name = e.stdin, "<stdin>"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r = f
	}

	if e.hujson {
		data, err := io.ReadAll(r)
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		r = bytes.NewReader(std)
	}

	v, err := dom.NewReader(r, e.cfg).Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	e.log.Debug("read input", "source", name, "kind", v.Kind())
	return v, nil
}

// write writes v to standard output followed by a newline.
func (e *env) write(v dom.Value) error {
	if err := dom.Encode(e.stdout, v, e.cfg); err != nil {
		return err
	}
	_, err := io.WriteString(e.stdout, "\n")
	return err
}

type fmtCmd struct {
	File string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *fmtCmd) Run(e *env) error {
	v, err := e.read(c.File)
	if err != nil {
		return err
	}
	return e.write(v)
}

type getCmd struct {
	Pointer string `arg:"" help:"JSON pointer to the value to print."`
	File    string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *getCmd) Run(e *env) error {
	p, err := pointer.Parse(c.Pointer)
	if err != nil {
		return err
	}
	v, err := e.read(c.File)
	if err != nil {
		return err
	}
	out, err := p.Get(v)
	if err != nil {
		return err
	}
	return e.write(out)
}

type diffCmd struct {
	Src string `arg:"" help:"Source document."`
	Dst string `arg:"" help:"Target document."`
}

func (c *diffCmd) Run(e *env) error {
	src, dst, err := e.readPair(c.Src, c.Dst)
	if err != nil {
		return err
	}
	p := patch.Diff(src, dst)
	e.log.Debug("computed patch", "operations", len(p))
	return e.write(p.ToValue())
}

type patchCmd struct {
	Patch string `arg:"" help:"JSON patch file."`
	File  string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *patchCmd) Run(e *env) error {
	pv, err := e.read(c.Patch)
	if err != nil {
		return err
	}
	p, err := patch.FromValue(pv)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Patch, err)
	}
	doc, err := e.read(c.File)
	if err != nil {
		return err
	}
	out, err := p.Apply(doc)
	if err != nil {
		return err
	}
	e.log.Debug("applied patch", "operations", len(p))
	return e.write(out)
}

type mergeCmd struct {
	Patch string `arg:"" help:"JSON merge patch file."`
	File  string `arg:"" optional:"" help:"Input file (default stdin)."`
}

func (c *mergeCmd) Run(e *env) error {
	pv, err := e.read(c.Patch)
	if err != nil {
		return err
	}
	doc, err := e.read(c.File)
	if err != nil {
		return err
	}
	return e.write(mergepatch.Apply(doc, pv))
}

type mergeDiffCmd struct {
	Src string `arg:"" help:"Source document."`
	Dst string `arg:"" help:"Target document."`
}

func (c *mergeDiffCmd) Run(e *env) error {
	src, dst, err := e.readPair(c.Src, c.Dst)
	if err != nil {
		return err
	}
	return e.write(mergepatch.Diff(src, dst))
}

func (e *env) readPair(a, b string) (dom.Value, dom.Value, error) {
	av, err := e.read(a)
	if err != nil {
		return nil, nil, err
	}
	bv, err := e.read(b)
	if err != nil {
		return nil, nil, err
	}
	return av, bv, nil
}
