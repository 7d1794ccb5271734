// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package bridge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/matt-FFFFFF/goblocks/internal/block"
	"github.com/matt-FFFFFF/goblocks/internal/ctxlog"
)

// Control socket verbs. A request is one line, "VERB arg...", answered by
// ReplyOK or by ReplyErr followed by the reason.
const (
	VerbRefresh = "REFRESH"
	VerbClick   = "CLICK"
	VerbButton  = "BUTTON"

	ReplyOK  = "OK"
	ReplyErr = "ERR"
)

const (
	socketMode  = 0o600
	readTimeout = 5 * time.Second
	maxRequest  = 256
	socketName  = "goblocks.sock"
)

var (
	// ErrBadRequest is returned for a request that does not parse.
	ErrBadRequest = errors.New("bad request")
	// ErrListen is returned when the control socket cannot be created.
	ErrListen = errors.New("cannot listen on control socket")
	// ErrRejected is returned by Send when the bar answered with an error.
	ErrRejected = errors.New("request rejected")
	// ErrNoReply is returned by Send when the connection closed without an answer.
	ErrNoReply = errors.New("no reply from control socket")
)

// DefaultSocketPath returns $XDG_RUNTIME_DIR/goblocks.sock, falling back to
// the temporary directory.
func DefaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}

	return filepath.Join(dir, socketName)
}

// SocketServer accepts control requests on a Unix socket and posts them as events.
type SocketServer struct {
	path     string
	events   chan<- Event
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewSocketServer returns a server for path that posts to events.
func NewSocketServer(path string, events chan<- Event) *SocketServer {
	return &SocketServer{
		path:   path,
		events: events,
	}
}

// Path returns the socket path.
func (s *SocketServer) Path() string {
	return s.path
}

// Start creates the socket, replacing a stale one, and starts accepting.
func (s *SocketServer) Start(ctx context.Context) error {
	_ = os.Remove(s.path)

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return errors.Join(ErrListen, err)
	}

	if err := os.Chmod(s.path, socketMode); err != nil {
		_ = ln.Close()
		return errors.Join(ErrListen, err)
	}

	s.listener = ln

	ctx, s.cancel = context.WithCancel(ctx)

	ctxlog.Debug(ctx, "control socket listening", "path", s.path)

	s.wg.Add(1)

	go s.acceptLoop(ctx)

	return nil
}

// Stop closes the socket, waits for open connections and removes the socket file.
func (s *SocketServer) Stop() {
	s.once.Do(func() {
		if s.listener == nil {
			return
		}

		s.cancel()
		_ = s.listener.Close()
		s.wg.Wait()
		_ = os.Remove(s.path)
	})
}

func (s *SocketServer) acceptLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}

			ctxlog.Debug(ctx, "control socket accept failed", "error", err)

			continue
		}

		s.wg.Add(1)

		go s.handleConn(ctx, conn)
	}
}

func (s *SocketServer) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close() //nolint:errcheck

	_ = conn.SetDeadline(time.Now().Add(readTimeout))

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, maxRequest), maxRequest)

	if !scanner.Scan() {
		return
	}

	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return
	}

	ev, err := ParseRequest(line)
	if err != nil {
		ctxlog.Debug(ctx, "control request rejected", "request", line, "error", err)
		_, _ = fmt.Fprintf(conn, "%s %s\n", ReplyErr, err)

		return
	}

	if !post(ctx, s.events, ev) {
		_, _ = fmt.Fprintf(conn, "%s shutting down\n", ReplyErr)
		return
	}

	ctxlog.Debug(ctx, "control request accepted", "event", ev.String())
	_, _ = fmt.Fprintln(conn, ReplyOK)
}

// ParseRequest parses one control request line.
//
//	REFRESH <signal>           refresh the blocks bound to signal
//	CLICK <signal> <button>    click on the block bound to signal
//	BUTTON <packed>            set button packed&0xff, refresh signal packed>>8
func ParseRequest(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Event{}, fmt.Errorf("%w: empty", ErrBadRequest)
	}

	verb, args := strings.ToUpper(fields[0]), fields[1:]

	switch verb {
	case VerbRefresh:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("%w: usage: %s <signal>", ErrBadRequest, VerbRefresh)
		}

		sig, err := parseSignal(args[0])
		if err != nil {
			return Event{}, err
		}

		return Event{Kind: KindRefresh, Signal: sig}, nil

	case VerbClick:
		if len(args) != 2 {
			return Event{}, fmt.Errorf("%w: usage: %s <signal> <button>", ErrBadRequest, VerbClick)
		}

		sig, err := parseSignal(args[0])
		if err != nil {
			return Event{}, err
		}

		button, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return Event{}, fmt.Errorf("%w: button %q", ErrBadRequest, args[1])
		}

		return Event{Kind: KindClick, Signal: sig, Button: byte(button)}, nil

	case VerbButton:
		if len(args) != 1 {
			return Event{}, fmt.Errorf("%w: usage: %s <packed>", ErrBadRequest, VerbButton)
		}

		packed, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return Event{}, fmt.Errorf("%w: packed value %q", ErrBadRequest, args[0])
		}

		button, sig := Unpack(uint32(packed))
		if sig > block.MaxSignal {
			return Event{}, fmt.Errorf("%w: signal %d out of range", ErrBadRequest, sig)
		}

		return Event{Kind: KindButton, Signal: sig, Button: button}, nil
	}

	return Event{}, fmt.Errorf("%w: unknown verb %q", ErrBadRequest, fields[0])
}

func parseSignal(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > block.MaxSignal {
		return 0, fmt.Errorf("%w: signal %q must be between 0 and %d", ErrBadRequest, s, block.MaxSignal)
	}

	return n, nil
}

// FormatRequest renders ev as a request line.
func FormatRequest(ev Event) string {
	switch ev.Kind {
	case KindClick:
		return fmt.Sprintf("%s %d %d", VerbClick, ev.Signal, ev.Button)
	case KindButton:
		return fmt.Sprintf("%s %d", VerbButton, Pack(ev.Button, ev.Signal))
	default:
		return fmt.Sprintf("%s %d", VerbRefresh, ev.Signal)
	}
}

// Send delivers ev to the bar listening on path and waits for its answer.
func Send(ctx context.Context, path string, ev Event) error {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", path, err)
	}
	defer conn.Close() //nolint:errcheck

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(readTimeout))
	}

	if _, err := fmt.Fprintln(conn, FormatRequest(ev)); err != nil {
		return fmt.Errorf("write request: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read reply: %w", err)
		}

		return ErrNoReply
	}

	reply := scanner.Text()
	if reply == ReplyOK {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrRejected, strings.TrimSpace(strings.TrimPrefix(reply, ReplyErr)))
}
