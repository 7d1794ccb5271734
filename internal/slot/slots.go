// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package slot

// Slots is the set of buffers of a status bar, one per block, in block order.
type Slots struct {
	bufs     []*Buffer
	capacity int
}

// New returns n empty slots of the given capacity.
func New(n, capacity int) *Slots {
	s := &Slots{
		bufs:     make([]*Buffer, n),
		capacity: capacity,
	}

	for i := range s.bufs {
		s.bufs[i] = NewBuffer(capacity)
	}

	return s
}

// Len returns the number of slots.
func (s *Slots) Len() int {
	return len(s.bufs)
}

// At returns the buffer of slot i, or nil if i is out of range.
func (s *Slots) At(i int) *Buffer {
	if i < 0 || i >= len(s.bufs) {
		return nil
	}

	return s.bufs[i]
}

// MaxLen returns the longest possible concatenation of all slots.
func (s *Slots) MaxLen() int {
	return len(s.bufs) * s.capacity
}

// AppendTo appends the contents of every slot, in order, to dst.
// dst does not grow when its capacity is at least MaxLen.
func (s *Slots) AppendTo(dst []byte) []byte {
	for _, b := range s.bufs {
		dst = append(dst, b.data...)
	}

	return dst
}
