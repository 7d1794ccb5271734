// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/spf13/afero"
)

const appDir = "goblocks"

var (
	// ErrReadConfig is returned when a configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
	// ErrParseConfig is returned when a configuration file cannot be decoded.
	ErrParseConfig = errors.New("failed to parse configuration file")
	// ErrUnknownFormat is returned for a file extension that is not YAML, TOML or HCL.
	ErrUnknownFormat = errors.New("unknown configuration format, use .yaml, .yml, .toml or .hcl")
)

// searchNames are tried in order in each search directory.
var searchNames = []string{"config.yaml", "config.yml", "config.toml", "config.hcl"}

// Load returns the effective configuration. A non-empty url is fetched with
// go-getter; otherwise the search path is tried, then the built-in table.
func Load(ctx context.Context, url string) (*Config, error) {
	if url != "" {
		data, name, err := getURL(ctx, url)
		if err != nil {
			return nil, err
		}

		return build(name, data, url)
	}

	fs := FsFactory()

	for _, p := range SearchPaths() {
		ok, err := afero.Exists(fs, p)
		if err != nil || !ok {
			continue
		}

		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, errors.Join(ErrReadConfig, err)
		}

		return build(p, data, p)
	}

	ctxlog.Debug(ctx, "no configuration file found, using built-in blocks")

	return Default(), nil
}

// SearchPaths returns the files Load looks for, in order.
func SearchPaths() []string {
	dir, err := userConfigDir()
	if err != nil {
		return nil
	}

	paths := make([]string, 0, len(searchNames))
	for _, name := range searchNames {
		paths = append(paths, filepath.Join(dir, appDir, name))
	}

	return paths
}

func build(name string, data []byte, source string) (*Config, error) {
	f, err := Parse(name, data)
	if err != nil {
		return nil, err
	}

	cfg, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	cfg.Source = source

	return cfg, nil
}

// Parse decodes data in the format given by the extension of name.
// Unknown keys are an error.
func Parse(name string, data []byte) (*File, error) {
	var (
		f   File
		err error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalWithOptions(data, &f, yaml.Strict())
	case ".toml":
		err = decodeTOML(data, &f)
	case ".hcl":
		err = decodeHCL(name, data, &f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	return &f, nil
}

func decodeTOML(data []byte, f *File) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(f)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}

	return nil
}

// Marshal renders f as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.MarshalWithOptions(f, yaml.IndentSequence(true))
}
