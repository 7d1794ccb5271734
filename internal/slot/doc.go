// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package slot holds the last rendered text of every block in fixed-capacity
// buffers. A buffer never grows: text that does not fit is truncated on a
// UTF-8 boundary, and the delimiter always fits.
package slot
