// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes human-readable lines to standard error through
// PrettyHandler. Standard output is never used for logs because it carries
// the status line when goblocks publishes to stdout. When started by systemd
// the logger writes to the journal instead, and an optional JSON log file can
// be fanned out alongside either destination.
package ctxlog
