package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"chatline/contract"
	"chatline/domain"
	"chatline/runtime"
)

// Server is the session supervisor: it owns the accept loop and spawns one
// goroutine per connection, each driving the lifecycle
// Connecting -> HandshakePending -> Active -> Closed.
// It runs as a worker under the runtime supervisor.
type Server struct {
	log         *slog.Logger
	listener    net.Listener
	connections contract.IConnections
	router      *runtime.Router
	wg          sync.WaitGroup
}

func NewServer(log *slog.Logger, listener net.Listener,
	connections contract.IConnections, router *runtime.Router) *Server {
	return &Server{
		log:         log,
		listener:    listener,
		connections: connections,
		router:      router,
	}
}

// Addr reports the bound listen address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run accepts connections until the context is cancelled. Individual client
// failures never bubble up; the accept loop outlives every session.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	s.log.Info("Accepting connections", "address", s.Addr())
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

// handle owns one connection for its whole lifetime.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	session := NewSession(conn)
	s.connections.Track(session)
	s.log.Debug("Connection accepted", "remote", session.RemoteAddr())

	if !s.handshake(session) {
		s.connections.Forget(session)
		_ = session.Close()
		return
	}

	s.readLoop(ctx, session)

	// Teardown runs here exactly once: the read loop is the only exit from
	// Active, whether the peer vanished or a failed delivery closed us.
	s.router.Disconnect(session)
	s.log.Info("Session closed", "user", session.Username(), "remote", session.RemoteAddr())
}

// handshake interprets the first line as the requested username. An empty
// name is a protocol violation, a taken name gets a rejection line; both
// close the connection without reaching Active.
func (s *Server) handshake(session *Session) bool {
	line, err := session.ReadLine()
	if err != nil {
		s.log.Debug("Connection dropped before handshake", "remote", session.RemoteAddr())
		return false
	}

	name := strings.TrimSpace(line)
	if name == "" {
		s.log.Warn("Protocol violation: empty username", "remote", session.RemoteAddr())
		return false
	}

	if err := s.connections.Register(name, session); err != nil {
		s.log.Info("Handshake rejected, name taken", "name", name, "remote", session.RemoteAddr())
		_ = session.Deliver(domain.FormatNameTaken(name))
		return false
	}
	session.SetUsername(name)

	if err := session.Deliver(domain.FormatWelcome(name)); err != nil {
		s.router.Disconnect(session)
		return false
	}

	s.router.AnnounceJoin(session)
	s.log.Info("User joined", "name", name, "remote", session.RemoteAddr())
	return true
}

// readLoop hands every inbound line to the router until the stream ends.
// An empty line is the peer's way of saying goodbye.
func (s *Server) readLoop(ctx context.Context, session *Session) {
	for {
		line, err := session.ReadLine()
		if err != nil {
			return
		}
		if line == "" {
			return
		}
		s.router.Route(ctx, session, domain.Parse(line))
	}
}
