// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/creachadair/jdom"
	"gopkg.in/yaml.v3"
)

// fileConfig is the format of the YAML configuration file. Unset fields do
// not affect the configuration.
type fileConfig struct {
	Pretty        *bool   `yaml:"pretty"`
	Indent        *string `yaml:"indent"`
	DuplicateKeys *string `yaml:"duplicate_keys"`
	Encoding      *string `yaml:"encoding"`
}

// loadConfig reads the YAML configuration file at path and records its
// settings in flags, keyed by the names understood by jdom.ConfigFromMap.
func loadConfig(path string, flags map[string]any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parsing config %q: %w", path, err)
	}
	if fc.Pretty != nil {
		flags[jdom.FlagPretty] = *fc.Pretty
	}
	if fc.Indent != nil {
		flags[jdom.FlagIndent] = *fc.Indent
	}
	if fc.DuplicateKeys != nil {
		flags[jdom.FlagDuplicateKeys] = *fc.DuplicateKeys
	}
	if fc.Encoding != nil {
		flags[jdom.FlagEncoding] = *fc.Encoding
	}
	return nil
}
