// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config prints the effective configuration.
package config

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/goblocks/cmd/goblocks/cmdstate"
	"github.com/matt-FFFFFF/goblocks/internal/config"
	"github.com/urfave/cli/v3"
)

const pathsFlag = "paths"

// ConfigCmd is the command that shows the configuration goblocks would run with.
var ConfigCmd = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration as YAML",
	Description: `Load the configuration the same way the bar does and print it as YAML,
with every default filled in. The output is a valid configuration file.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        pathsFlag,
			Usage:       "Print the configuration search path instead",
			Value:       false,
			DefaultText: "false",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	if cmd.Bool(pathsFlag) {
		_, err := fmt.Fprintln(w, strings.Join(config.SearchPaths(), "\n"))
		return err
	}

	cfg, err := config.Load(ctx, cmd.String(cmdstate.ConfigFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := write(w, cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func write(w io.Writer, cfg *config.Config) error {
	out, err := config.Marshal(cfg.File())
	if err != nil {
		return err
	}

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}

	if _, err := fmt.Fprintf(w, "# source: %s\n", source); err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}
