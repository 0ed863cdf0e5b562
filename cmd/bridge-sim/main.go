// Package main runs the bridge simulator: a local stand-in for the debugger
// bridge, advertised through the standard discovery file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/bridgesim"
	"github.com/bridgectl/bridgectl/internal/constants"
	"github.com/bridgectl/bridgectl/internal/logger"

	"github.com/google/uuid"
)

func main() {
	port := flag.Int("port", constants.DefaultSimulatorPort, "port to listen on")
	apiKey := flag.String("api-key", "", "API key clients must present (default: random)")
	keyHeader := flag.String("key-header", constants.DefaultKeyHeader, "header name carrying the API key")
	seedErrors := flag.Bool("seed-errors", false, "seed the simulator with sample build errors")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := logger.Initialize(constants.Development, level)

	if *apiKey == "" {
		*apiKey = uuid.NewString()
	}

	server := bridgesim.NewServer(*port, *apiKey, *keyHeader, "", log)

	if *seedErrors {
		server.Simulator().SetErrors([]api.ErrorItem{
			{File: `C:\Code\Program.cs`, Line: 12, Description: "The name 'config' is not defined"},
			{File: `C:\Code\Worker.cs`, Line: 87, Description: "Cannot convert 'string' to 'int'"},
		})
		log.Info("seeded sample build errors")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("simulator failed", "error", err)
			os.Exit(1)
		}
		return
	case <-quit:
	}

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("simulator stopped")
}
