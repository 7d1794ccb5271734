// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds the flags shared by the goblocks commands.
// They are declared on the root command and inherited by every subcommand.
package cmdstate

import (
	"github.com/matt-FFFFFF/goblocks/internal/bridge"
	"github.com/matt-FFFFFF/goblocks/internal/config"
	"github.com/matt-FFFFFF/goblocks/internal/pidfile"
	"github.com/urfave/cli/v3"
)

// Shared flag names.
const (
	ConfigFlag  = "config"
	SocketFlag  = "socket"
	PIDFileFlag = "pid-file"
)

// Flags are the root command flags every subcommand can read.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    ConfigFlag,
		Aliases: []string{"c"},
		Usage: "URL of the configuration file. " +
			"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
			"Defaults to goblocks/config.{yaml,yml,toml,hcl} in the user configuration directory.",
		TakesFile: true,
		OnlyOnce:  true,
	},
	&cli.StringFlag{
		Name:      SocketFlag,
		Usage:     "Path of the control socket",
		TakesFile: true,
		OnlyOnce:  true,
	},
	&cli.StringFlag{
		Name:      PIDFileFlag,
		Usage:     "Path of the PID file",
		TakesFile: true,
		OnlyOnce:  true,
	},
}

// SocketPath returns the control socket path from the flag, the configuration
// or the default, in that order. cfg may be nil.
func SocketPath(cmd *cli.Command, cfg *config.Config) string {
	return first(cmd.String(SocketFlag), cfgValue(cfg, func(c *config.Config) string { return c.Socket }), bridge.DefaultSocketPath())
}

// PIDPath returns the PID file path from the flag, the configuration or the
// default, in that order. cfg may be nil.
func PIDPath(cmd *cli.Command, cfg *config.Config) string {
	return first(cmd.String(PIDFileFlag), cfgValue(cfg, func(c *config.Config) string { return c.PIDFile }), pidfile.DefaultPath())
}

func cfgValue(cfg *config.Config, get func(*config.Config) string) string {
	if cfg == nil {
		return ""
	}

	return get(cfg)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
