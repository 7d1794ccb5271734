// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the block table and bar settings.
//
// A configuration file is YAML, TOML or HCL, chosen by its extension. It is
// either given as a go-getter URL or found in the user configuration
// directory as goblocks/config.{yaml,yml,toml,hcl}. Without a file the
// built-in table is used.
//
// A YAML example:
//
//	delimiter: " | "
//	blocks:
//	  - icon: "Vol: "
//	    command: pamixer --get-volume
//	    signal: 10
//	  - command: date '+%H:%M'
//	    interval: 5
//	    timeout: 2s
//
// HCL files may read the environment with env("NAME"):
//
//	block {
//	  command  = "${env("HOME")}/bin/battery"
//	  interval = 60
//	}
package config
