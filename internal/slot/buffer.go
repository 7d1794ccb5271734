// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package slot

import (
	"errors"
	"unicode/utf8"
)

// DefaultCapacity is the default size of a slot in bytes.
const DefaultCapacity = 50

// ErrCapacityTooSmall is returned when a buffer cannot hold a suffix and at least one more byte.
var ErrCapacityTooSmall = errors.New("slot capacity too small")

// Buffer is a fixed-capacity text buffer. The zero value has no capacity.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty buffer that holds at most capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Cap returns the capacity of the buffer in bytes.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the buffer contents. The slice is only valid until the next Render or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String returns the buffer contents as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Render replaces the contents with prefix, body and suffix. The suffix is
// always kept whole; prefix and then body are cut to the remaining space.
// It reports whether anything was cut, and fails without touching the
// buffer when the suffix alone does not fit.
func (b *Buffer) Render(prefix, body, suffix []byte) (bool, error) {
	room := b.Cap() - len(suffix)
	if room < 0 {
		return false, ErrCapacityTooSmall
	}

	p := fit(prefix, room)
	room -= len(p)
	fitted := fit(body, room)

	b.data = append(b.data[:0], p...)
	b.data = append(b.data, fitted...)
	b.data = append(b.data, suffix...)

	return len(p) < len(prefix) || len(fitted) < len(body), nil
}

// fit returns the longest prefix of s no longer than n bytes that does not
// split a multi-byte character.
func fit(s []byte, n int) []byte {
	if len(s) <= n {
		return s
	}

	if n <= 0 {
		return s[:0]
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
