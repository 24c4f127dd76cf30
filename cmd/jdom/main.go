// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jdom reads, queries, compares, and patches JSON documents.
//
// Usage:
//
//	jdom fmt [file]              # re-emit a document (compact or --pretty)
//	jdom get <pointer> [file]    # print the value at an RFC 6901 pointer
//	jdom diff <src> <dst>        # print an RFC 6902 patch from src to dst
//	jdom patch <patch> [file]    # apply an RFC 6902 patch
//	jdom merge <patch> [file]    # apply an RFC 7396 merge patch
//	jdom merge-diff <src> <dst>  # print an RFC 7396 merge patch
//
// A missing file argument, or "-", reads standard input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jdom"
)

type cli struct {
	globals

	Fmt       fmtCmd       `cmd:"" help:"Parse a document and write it back out."`
	Get       getCmd       `cmd:"" help:"Print the value at a JSON pointer."`
	Diff      diffCmd      `cmd:"" help:"Print a JSON patch that transforms src into dst."`
	Patch     patchCmd     `cmd:"" help:"Apply a JSON patch to a document."`
	Merge     mergeCmd     `cmd:"" help:"Apply a JSON merge patch to a document."`
	MergeDiff mergeDiffCmd `cmd:"" name:"merge-diff" help:"Print a JSON merge patch that transforms src into dst."`
}

type globals struct {
	Pretty        bool   `help:"Pretty-print output."`
	Indent        string `help:"Indentation unit for pretty output (default two spaces)." placeholder:"TEXT"`
	DuplicateKeys string `name:"duplicate-keys" help:"Treatment of repeated object keys: LAST, FIRST, or NONE." placeholder:"POLICY"`
	HuJSON        bool   `name:"hujson" help:"Accept comments and trailing commas in input."`
	Config        string `help:"Read settings from this YAML file." type:"path"`
	Debug         bool   `help:"Enable debug logging."`
}

func main() {
	e := &env{
		stdin:  io.NopCloser(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := run(os.Args[1:], e); err != nil {
		fmt.Fprintf(os.Stderr, "jdom: %v\n", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command in e.
func run(args []string, e *env, opts ...kong.Option) error {
	var c cli
	parser, err := kong.New(&c, append([]kong.Option{
		kong.Name("jdom"),
		kong.Description("Read, query, compare, and patch JSON documents."),
		kong.UsageOnError(),
		kong.Writers(e.stdout, e.stderr),
	}, opts...)...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := c.globals.setup(e); err != nil {
		return err
	}
	e.log.Debug("running command", "command", ctx.Command())
	return ctx.Run(e)
}

// setup initializes the logger and configuration of e. Settings from the
// configuration file are overridden by flags given on the command line.
func (g *globals) setup(e *env) error {
	level := slog.LevelInfo
	if g.Debug {
		level = slog.LevelDebug
	}
	e.log = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	flags := make(map[string]any)
	if g.Config != "" {
		if err := loadConfig(g.Config, flags); err != nil {
			return err
		}
		e.log.Debug("loaded config", "path", g.Config, "settings", len(flags))
	}
	if g.Pretty {
		flags[jdom.FlagPretty] = true
	}
	if g.Indent != "" {
		flags[jdom.FlagIndent] = g.Indent
	}
	if g.DuplicateKeys != "" {
		flags[jdom.FlagDuplicateKeys] = g.DuplicateKeys
	}
	cfg, err := jdom.ConfigFromMap(flags)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.hujson = g.HuJSON
	return nil
}
