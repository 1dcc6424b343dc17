package main

import (
	"os"

	"github.com/ayushgpt/facalloc/internal/pkg/logger"
	"github.com/ayushgpt/facalloc/internal/server"
)

// @title Faculty Allocation API
// @version 1.0
// @description Merit-ordered student-to-faculty allocation over uploaded preference tables

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
