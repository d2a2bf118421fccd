// Package main implements the arena server: a RESTful API hosting automated
// chess matches between language-model agents under a human director.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"llmchess/cmd/arena-server/cli"
	"llmchess/internal/orchestrator"
	"llmchess/internal/service"
	"llmchess/internal/storage"
	"llmchess/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "CLI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Command-line flags
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, verbose logs)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")

		turnDelayMs = flag.Int("turn-delay", 2000, "Default delay between turns in milliseconds")
		hallucLimit = flag.Int("hallucination-limit", 3, "Default consecutive invalid proposals before director escalation")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *dev {
		log.SetLevel(logrus.DebugLevel)
	}

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.WithField("path", *storagePath).Info("initializing persistent storage")
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize storage")
		}
		if err := store.InitDB(); err != nil {
			log.WithError(err).Fatal("failed to initialize schema")
		}
	} else {
		log.Info("persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Initialize the Service with optional storage
	defaults := orchestrator.DefaultConfig()
	if *turnDelayMs >= 0 {
		defaults.TurnDelay = time.Duration(*turnDelayMs) * time.Millisecond
	}
	if *hallucLimit > 0 {
		defaults.HallucinationLimit = *hallucLimit
	}
	svc := service.New(store, defaults, log)

	// 3. Initialize the Fiber App/HTTP Handler, injecting the service
	app := http.NewFiberApp(svc, *dev)

	// API Server configuration
	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	// Start API server in a goroutine
	go func() {
		log.Info("Arena API Server starting...")
		log.Infof("API Listening on: http://%s", apiAddr)
		log.Infof("API Endpoints: http://%s/api/v1/matches", apiAddr)
		log.Infof("Health: http://%s/health", apiAddr)
		if *storagePath != "" {
			log.Infof("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Info("Storage: Disabled (match history kept in memory only)")
		}

		if err := app.Listen(apiAddr); err != nil {
			log.WithError(err).Error("API server listen error")
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown of HTTP server with timeout
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	// Pauses every match and flushes the storage queue
	if err := svc.Close(); err != nil {
		log.WithError(err).Error("service close error")
	}

	log.Info("Server exited")
}
