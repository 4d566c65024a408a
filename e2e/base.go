package e2e

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"chatline/infrastructure/tcp"
	"chatline/moderation"
	"chatline/runtime"
	"chatline/runtime/workers"
)

// scriptedCollaborator answers every question with a fixed line, so scenarios
// never depend on a live assistant backend.
type scriptedCollaborator struct {
	answer string
}

func (c *scriptedCollaborator) Ask(_ context.Context, _ string) (string, error) {
	return c.answer, nil
}

// BaseChatSuite boots a fresh in-process server for every test: its own
// listener on an ephemeral port, its own registries, and the full supervised
// worker stack, so scenarios never see each other's users or groups.
type BaseChatSuite struct {
	suite.Suite
	Config Config

	Answer string

	addr   string
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *BaseChatSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.Answer = "the answer is 42"
}

func (s *BaseChatSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	censored, err := runtime.LoadCensoredWords()
	s.Require().NoError(err)
	moderator, err := moderation.NewModerator(censored.Words, '*', log)
	s.Require().NoError(err)

	connections := runtime.NewConnections()
	groups := runtime.NewGroups()
	router := runtime.NewRouter(log, connections, groups, &moderator,
		&scriptedCollaborator{answer: s.Answer}, 5*time.Second)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	server := tcp.NewServer(log, listener, connections, router)
	s.addr = server.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		workers.NewSupervisor(log, 200*time.Millisecond).Add(server).Run(ctx)
	}()
}

func (s *BaseChatSuite) TearDownTest() {
	s.cancel()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		s.FailNow("Server did not shut down in time")
	}
}

// Step prints a colorized header for a scenario step in logs
func (s *BaseChatSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// chatClient is a raw line-protocol client used by the scenarios.
type chatClient struct {
	t      *testing.T
	cfg    Config
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects a nameless client; the handshake happens in Join.
func (s *BaseChatSuite) Dial() *chatClient {
	conn, err := net.DialTimeout("tcp", s.addr, s.Config.ReadTimeout)
	s.Require().NoError(err)
	return &chatClient{t: s.T(), cfg: s.Config, conn: conn, reader: bufio.NewReader(conn)}
}

// Join connects a client, completes the username handshake, and drains the
// arrival notice on every already-connected observer.
func (s *BaseChatSuite) Join(name string, observers ...*chatClient) *chatClient {
	client := s.Dial()
	client.Send(name)
	client.Expect(fmt.Sprintf("Server: Welcome to the chat room, %s!", name))
	for _, observer := range observers {
		observer.Expect(fmt.Sprintf("%s has joined the chat", name))
	}
	return client
}

func (c *chatClient) Send(line string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.New(c.t).NoError(err)
}

// Expect blocks for the next line and requires it to match exactly.
func (c *chatClient) Expect(want string) {
	c.t.Helper()
	req := require.New(c.t)
	req.NoError(c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)))
	line, err := c.reader.ReadString('\n')
	req.NoError(err, "expected line %q", want)
	req.Equal(want, strings.TrimRight(line, "\r\n"))
}

// ExpectSilence requires that nothing arrives within the silence window.
func (c *chatClient) ExpectSilence() {
	c.t.Helper()
	req := require.New(c.t)
	req.NoError(c.conn.SetReadDeadline(time.Now().Add(c.cfg.SilenceWindow)))
	line, err := c.reader.ReadString('\n')
	if err == nil {
		req.Failf("unexpected line", "received %q while expecting silence", line)
	}
	netErr, ok := err.(net.Error)
	req.True(ok, "read failed with a non-timeout error: %v", err)
	req.True(netErr.Timeout(), "read failed with a non-timeout error: %v", err)
}

// ExpectEOF requires the server to have closed the connection.
func (c *chatClient) ExpectEOF() {
	c.t.Helper()
	req := require.New(c.t)
	req.NoError(c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout)))
	_, err := c.reader.ReadString('\n')
	req.Error(err)
	if netErr, ok := err.(net.Error); ok {
		req.False(netErr.Timeout(), "connection still open after rejection")
	}
}

func (c *chatClient) Close() {
	_ = c.conn.Close()
}
