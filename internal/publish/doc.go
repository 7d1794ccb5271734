// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package publish joins the slots into the status text and hands it to a
// display target when it differs from what was last shown.
//
// Two targets exist: StdoutTarget prints one line per change, XRootTarget sets
// the name of the X root window, which is where dwm reads its status text.
package publish
