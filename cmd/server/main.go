package main

import (
	grpcserver "chat-room/infrastructure/grpc/server"
	httpserver "chat-room/infrastructure/http/server"
	"chat-room/internal"
	"chat-room/moderation"
	"chat-room/observability"
	"chat-room/repositories"
	"chat-room/runtime/workers"
	"chat-room/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat room terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred closes run.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (Badger + Bluge)
	options, err := internal.BadgerOptions(ctx, config.DatabaseURL, logger)
	if err != nil {
		return exitConfig, err
	}
	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, documentMapper)
	}

	blugeConfig := bluge.InMemoryOnlyConfig()
	if config.BlugeFilepath != "" {
		blugeConfig = bluge.DefaultConfig(config.BlugeFilepath)
	}
	blugeWriter, err := bluge.OpenWriter(blugeConfig)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Services
	var moderator *moderation.Moderator
	if words := config.CensoredWordList(); len(words) > 0 {
		moderator, err = moderation.NewModerator(words, charReplacement, logger)
		if err != nil {
			return exitConfig, fmt.Errorf("moderator init failed: %w", err)
		}
	}

	metrics := observability.NewMetrics()
	participantRepository := repositories.NewParticipantRepository(db)
	messageRepository := repositories.NewMessageRepository(db, logger)
	messageIndex := repositories.NewMessageIndex(blugeWriter, logger)
	messageService := services.NewMessageService(logger, participantRepository, messageRepository,
		messageIndex, moderator, metrics, config.SearchLimit)
	participantService := services.NewParticipantService(logger, participantRepository, messageService, metrics)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 2)

	// 5. Background workers
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	supervisor.Add(
		workers.NewPresenceReaper(logger, participantRepository, messageService, metrics,
			config.ReaperInterval, config.StaleThreshold),
		workers.NewTelemetryWorker(logger, metrics, config.TelemetryInterval),
	)
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		supervisor.Run(ctx)
	}()

	// 6. gRPC health
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GrpcPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	healthServer := grpcserver.NewHealthServer(logger)
	go func() {
		logger.Info("Starting gRPC health server", "address", grpcAddress)
		if err := healthServer.Server().Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. HTTP API
	app := httpserver.NewChatServer(logger, participantService, messageService, metrics).App()
	httpAddress := fmt.Sprintf("%s:%d", config.Host, config.Port)
	go func() {
		logger.Info("Starting HTTP server", "address", httpAddress, "at", time.Now().UTC())
		if err := app.Listen(httpAddress); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	healthServer.SetServing(true)

	// 8. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 9. Graceful shutdown
	logger.Info("Shutting down gracefully...")
	healthServer.SetServing(false)
	if err := app.ShutdownWithTimeout(config.ShutdownTimeout); err != nil {
		logger.Warn("HTTP shutdown failed", "error", err)
	}
	healthServer.Stop()
	stop()
	<-supervisorDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

// documentMapper renders stored participants and messages in the debug inspector.
func documentMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	summary, err := repositories.DescribeDocument(key, val)
	if err != nil {
		row.Detail = "Error: " + err.Error()
		return row
	}
	row.Type = summary.Kind
	row.Detail = fmt.Sprintf("%s %s %s", summary.At, summary.Name, summary.Detail)
	return row
}
