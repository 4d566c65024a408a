package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chatline/ai"
	"chatline/contract"
	"chatline/infrastructure/tcp"
	"chatline/moderation"
	"chatline/runtime"
	"chatline/runtime/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer executes before the process
// exits and main stays trivially testable.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation
	censoredChar, err := CharacterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}
	censored, err := runtime.LoadCensoredWords()
	if err != nil {
		return fmt.Errorf("loading censored words: %w", err)
	}
	log.Info(fmt.Sprintf("%d censored words loaded [%s]",
		len(censored.Words), strings.Join(censored.Languages, ",")))

	moderator, err := moderation.NewModerator(censored.Words, censoredChar, log)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}

	// 3. Registries, collaborator and router
	connections := runtime.NewConnections()
	groups := runtime.NewGroups()

	var collaborator contract.Collaborator
	if config.OpenAIAPIKey != "" {
		collaborator = ai.NewAssistant(config.OpenAIAPIKey, config.OpenAIModel, log)
	} else {
		log.Warn("OPENAI_API_KEY not set, /chatgpt will answer with an error line")
	}

	router := runtime.NewRouter(log, connections, groups, &moderator, collaborator, config.AskTimeout)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Listener & supervised workers
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	server := tcp.NewServer(log, listener, connections, router)
	telemetry := workers.NewTelemetryWorker(log, config.TelemetryInterval, connections, groups)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(server, telemetry)

	log.Info("Starting chat server", "address", address)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
