package main

import (
	"context"
	"os"

	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/server"
)

// @title PlacementHub API
// @version 1.0
// @description API for the PlacementHub college placement portal
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email placement-cell@placementhub.test

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3003
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, also accepted from the session cookie

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
