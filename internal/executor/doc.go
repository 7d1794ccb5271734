// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package executor runs block commands and renders their first line of
// output into the block's slot.
//
// Commands run through a shell with os.StartProcess, the same way popen(3)
// would run them: standard output is read from a pipe, standard error is
// inherited and the exit status is ignored. When a button press is pending
// it is exposed to exactly one command as the BUTTON environment variable.
package executor
