// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package publish

import (
	"bytes"
	"context"
	"errors"

	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
	"github.com/matt-FFFFFF/goblocks/internal/slot"
)

// ErrPublishFailed is returned when the target rejected the status text.
var ErrPublishFailed = errors.New("failed to publish status")

// Target displays the status text.
type Target interface {
	// Publish shows status. The slice is only valid for the duration of the call.
	Publish(ctx context.Context, status []byte) error
	// Close releases the target.
	Close() error
}

// Publisher diffs the joined slots against the last published text.
type Publisher struct {
	target    Target
	delimiter []byte
	current   []byte
	previous  []byte
}

// New returns a Publisher for target. maxLen is the longest possible status,
// see slot.Slots.MaxLen; both state buffers are allocated up front.
func New(target Target, delimiter []byte, maxLen int) *Publisher {
	return &Publisher{
		target:    target,
		delimiter: delimiter,
		current:   make([]byte, 0, maxLen),
		previous:  make([]byte, 0, maxLen),
	}
}

// Publish builds the status text from slots and sends it to the target if it
// changed. The last delimiter is dropped. The previous text is only replaced
// once the target accepted the new one, so a failed publish is retried on the
// next call.
func (p *Publisher) Publish(ctx context.Context, slots *slot.Slots) (bool, error) {
	p.current = slots.AppendTo(p.current[:0])
	p.current = bytes.TrimSuffix(p.current, p.delimiter)

	if bytes.Equal(p.current, p.previous) {
		return false, nil
	}

	if err := p.target.Publish(ctx, p.current); err != nil {
		return false, errors.Join(ErrPublishFailed, err)
	}

	p.previous = append(p.previous[:0], p.current...)

	ctxlog.Debug(ctx, "status published", "status", string(p.current))

	return true, nil
}

// Last returns the last published status text.
func (p *Publisher) Last() []byte {
	return p.previous
}
