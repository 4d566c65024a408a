package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR,default=localhost:12345"`
	Username      string `env:"CHAT_USERNAME"`
	LogLevel      string `env:"LOG_LEVEL,default=info"`
	Colours       bool   `env:"CHAT_COLOURS,default=true"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the connection lifecycle: dial, username handshake, then a
// receive loop printing server lines while stdin lines are forwarded as-is.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Resolve the username, prompting when the environment has none.
	username := strings.TrimSpace(config.Username)
	if username == "" {
		fmt.Print("Enter your username: ")
		stdin := bufio.NewReader(os.Stdin)
		line, err := stdin.ReadString('\n')
		if err != nil {
			return exitRuntime, fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return exitConfig, fmt.Errorf("a username is required")
	}

	// 4. Connect and hand over the username as the first line.
	conn, err := net.Dial("tcp", config.ServerAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	if _, err := fmt.Fprintf(conn, "%s\n", username); err != nil {
		return exitRuntime, fmt.Errorf("sending username: %w", err)
	}

	// 5. Receive loop. Ends when the server closes the stream.
	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(render(scanner.Text(), config.Colours))
		}
		done <- scanner.Err()
	}()

	// 6. Forward stdin lines until EOF, signal, or server loss.
	input := make(chan string)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping client...")
			return exitOK, nil
		case err := <-done:
			if err != nil {
				return exitRuntime, fmt.Errorf("connection lost: %w", err)
			}
			log.Info("Server closed the connection")
			return exitOK, nil
		case line, ok := <-input:
			if !ok {
				return exitOK, nil
			}
			if line == "" {
				continue
			}
			// Catch malformed whispers locally, no round trip needed.
			if strings.HasPrefix(line, "/whisper") && len(strings.Fields(line)) < 3 {
				fmt.Println("usage: /whisper <username> <message>")
				continue
			}
			if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
				return exitRuntime, fmt.Errorf("sending message: %w", err)
			}
		}
	}
}

// render highlights whispers and server notices; plain chat stays untouched.
func render(line string, colours bool) string {
	if !colours {
		return line
	}
	switch {
	case strings.HasPrefix(line, "(whisper)"):
		return color.New(color.FgMagenta).Render(line)
	case strings.HasPrefix(line, "Server:"),
		strings.Contains(line, "has joined"),
		strings.Contains(line, "has left"):
		return color.New(color.FgGreen).Render(line)
	case strings.HasPrefix(line, "ChatGPT:"):
		return color.New(color.FgCyan).Render(line)
	default:
		return line
	}
}
