// Package tcp implements the newline-delimited text transport: one Session
// per client connection and the accept-loop Server that drives the
// handshake/read/teardown lifecycle.
package tcp

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Session wraps one client's duplex byte stream. Reads happen only from the
// session's own goroutine; writes come from any routing goroutine and are
// serialized by a mutex. Messages are opaque UTF-8 lines, no further framing.
type Session struct {
	id     string
	conn   net.Conn
	reader *bufio.Reader

	mu   sync.RWMutex
	name string

	closeOnce sync.Once
	closeErr  error
}

func NewSession(conn net.Conn) *Session {
	return &Session{
		id:     uuid.NewString(),
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// ID is the session's transport identity, fixed for its lifetime.
func (s *Session) ID() string {
	return s.id
}

// Username is empty until handshake completes.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// SetUsername records the identity established by the handshake. Called once.
func (s *Session) SetUsername(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// ReadLine blocks for the next newline-delimited message, with the line
// terminator stripped. Any error means the peer is gone.
func (s *Session) ReadLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Deliver sends one text line to the peer. An error is a delivery failure:
// the caller must treat this session as disconnected, not propagate the
// failure to anyone else.
func (s *Session) Deliver(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Write([]byte(line + "\n"))
	return err
}

// Close shuts the connection down exactly once; later calls return the first
// result. Closing unblocks a pending ReadLine, which triggers teardown in the
// session's own goroutine.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// RemoteAddr reports the peer address for logging.
func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}
