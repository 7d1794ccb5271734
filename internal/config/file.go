// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/slot"
)

// MaxDelimiterLen is the longest delimiter in bytes. Longer ones are cut.
const MaxDelimiterLen = 5

var (
	// ErrInvalidConfig is returned when the configuration does not describe a usable bar.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidTimeout is returned for a block timeout that is not a Go duration.
	ErrInvalidTimeout = errors.New("invalid block timeout")
)

// File is the on-disk configuration.
type File struct {
	Delimiter    *string       `yaml:"delimiter,omitempty" toml:"delimiter,omitempty" hcl:"delimiter,optional"`
	SlotCapacity int           `yaml:"slot_capacity,omitempty" toml:"slot_capacity,omitempty" hcl:"slot_capacity,optional"`
	Shell        string        `yaml:"shell,omitempty" toml:"shell,omitempty" hcl:"shell,optional"`
	Socket       string        `yaml:"socket,omitempty" toml:"socket,omitempty" hcl:"socket,optional"`
	PIDFile      string        `yaml:"pid_file,omitempty" toml:"pid_file,omitempty" hcl:"pid_file,optional"`
	Blocks       []BlockConfig `yaml:"blocks" toml:"blocks" hcl:"block,block"`
}

// BlockConfig is one block as written in a configuration file.
type BlockConfig struct {
	Icon     string `yaml:"icon,omitempty" toml:"icon,omitempty" hcl:"icon,optional"`
	Command  string `yaml:"command" toml:"command" hcl:"command"`
	Interval int    `yaml:"interval,omitempty" toml:"interval,omitempty" hcl:"interval,optional"`
	Signal   int    `yaml:"signal,omitempty" toml:"signal,omitempty" hcl:"signal,optional"`
	Timeout  string `yaml:"timeout,omitempty" toml:"timeout,omitempty" hcl:"timeout,optional"`
}

// Config is the effective configuration of a bar.
type Config struct {
	Delimiter    string
	SlotCapacity int
	Shell        string
	Socket       string
	PIDFile      string
	Blocks       block.Table
	// Source is where the configuration was read from, empty for the built-in one.
	Source string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Delimiter:    block.DefaultDelimiter,
		SlotCapacity: slot.DefaultCapacity,
		Blocks:       block.Defaults(),
	}
}

// Build turns f into a validated Config. Unset values, the block list
// included, take their defaults.
func (f *File) Build() (*Config, error) {
	cfg := Default()

	if f.Delimiter != nil {
		cfg.Delimiter = TruncateDelimiter(*f.Delimiter)
	}

	if f.SlotCapacity != 0 {
		cfg.SlotCapacity = f.SlotCapacity
	}

	cfg.Shell = f.Shell
	cfg.Socket = f.Socket
	cfg.PIDFile = f.PIDFile

	var result *multierror.Error

	table := make(block.Table, 0, len(f.Blocks))

	for i, bc := range f.Blocks {
		b := block.Block{
			Icon:     bc.Icon,
			Command:  bc.Command,
			Interval: bc.Interval,
			Signal:   bc.Signal,
		}

		if bc.Timeout != "" {
			d, err := time.ParseDuration(bc.Timeout)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("block %d: %w: %q", i, ErrInvalidTimeout, bc.Timeout))
			}

			b.Timeout = d
		}

		table = append(table, b)
	}

	if len(table) > 0 {
		cfg.Blocks = table
	}

	if err := cfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate checks the settings and the block table.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.SlotCapacity <= len(c.Delimiter) {
		result = multierror.Append(result, fmt.Errorf("%w: %d bytes cannot hold the delimiter and any output",
			slot.ErrCapacityTooSmall, c.SlotCapacity))
	}

	if err := c.Blocks.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// File returns c in its on-disk form.
func (c *Config) File() File {
	delim := c.Delimiter

	f := File{
		Delimiter:    &delim,
		SlotCapacity: c.SlotCapacity,
		Shell:        c.Shell,
		Socket:       c.Socket,
		PIDFile:      c.PIDFile,
		Blocks:       make([]BlockConfig, len(c.Blocks)),
	}

	for i, b := range c.Blocks {
		f.Blocks[i] = BlockConfig{
			Icon:     b.Icon,
			Command:  b.Command,
			Interval: b.Interval,
			Signal:   b.Signal,
		}

		if b.Timeout > 0 {
			f.Blocks[i].Timeout = b.Timeout.String()
		}
	}

	return f
}

// TruncateDelimiter cuts s to MaxDelimiterLen bytes without splitting a character.
func TruncateDelimiter(s string) string {
	if len(s) <= MaxDelimiterLen {
		return s
	}

	n := MaxDelimiterLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
