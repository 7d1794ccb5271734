// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/goblocks/internal/color"
)

// TimeFormat is the format used for timestamps in log lines.
const TimeFormat = "[15:04:05.000]"

var (
	// ErrMarshalAttribute is returned when the attributes of a record cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when a log line cannot be written.
	ErrIoWrite = errors.New("error when writing to output")
)

// PrettyHandler writes one line per record: timestamp, level, message and
// the attributes as a compact JSON object.
type PrettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
	colour bool
}

// Option configures a PrettyHandler.
type Option func(h *PrettyHandler)

// WithColour forces colored output.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour colors output when the color package allows it.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// NewPrettyHandler creates a PrettyHandler writing to w.
// Only the Level field of opts is used.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions, options ...Option) *PrettyHandler {
	h := &PrettyHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: slog.LevelInfo,
	}

	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.attrs = append(c.attrs, qualify(h.groups, a))
	}

	return c
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		addAttr(fields, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, qualify(h.groups, a))
		return true
	})

	var line strings.Builder

	if !r.Time.IsZero() {
		line.WriteString(h.paint(r.Time.Format(TimeFormat), color.FgHiBlack))
		line.WriteByte(' ')
	}

	line.WriteString(h.paint(r.Level.String()+":", levelColor(r.Level)))
	line.WriteByte(' ')
	line.WriteString(h.paint(r.Message, color.FgHiWhite))

	if len(fields) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = 0
		f.DisabledColor = !h.colour

		b, err := f.Marshal(fields)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		line.WriteByte(' ')
		line.Write(b)
	}

	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.w, line.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func (h *PrettyHandler) clone() *PrettyHandler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	c.groups = append([]string(nil), h.groups...)

	return &c
}

func (h *PrettyHandler) paint(s string, code color.Code) string {
	if !h.colour {
		return s
	}

	return color.Colorize(s, code)
}

func levelColor(l slog.Level) color.Code {
	switch {
	case l < slog.LevelInfo:
		return color.FgWhite
	case l < slog.LevelWarn:
		return color.FgCyan
	case l < slog.LevelError:
		return color.FgYellow
	case l == slog.LevelError:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

func qualify(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return a
	}

	a.Key = strings.Join(groups, ".") + "." + a.Key

	return a
}

// addAttr stores a in fields as a value colorjson can render
// (string, float64, bool, nil, map or slice).
func addAttr(fields map[string]any, a slog.Attr) {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		if len(v.Group()) == 0 {
			return
		}

		sub := make(map[string]any, len(v.Group()))
		for _, ga := range v.Group() {
			addAttr(sub, ga)
		}

		if a.Key == "" {
			for k, sv := range sub {
				fields[k] = sv
			}

			return
		}

		fields[a.Key] = sub

		return
	}

	if a.Key == "" {
		return
	}

	fields[a.Key] = jsonValue(v)
}

func jsonValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return float64(v.Int64())
	case slog.KindUint64:
		return float64(v.Uint64())
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	}

	switch x := v.Any().(type) {
	case nil:
		return nil
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case []byte:
		return string(x)
	}

	b, err := json.Marshal(v.Any())
	if err != nil {
		return fmt.Sprint(v.Any())
	}

	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return string(b)
	}

	return out
}
