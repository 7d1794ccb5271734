// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colorizes log output with ANSI escape codes.
// Color is disabled when NO_COLOR is set, forced when FORCE_COLOR is set,
// and otherwise enabled only when standard error is a terminal. Standard
// output is not consulted because it carries the status line in stdout mode.
package color
