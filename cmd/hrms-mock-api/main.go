package main

import (
	"github.com/dvcrn/hrms-api-client/internal/env"
	"github.com/dvcrn/hrms-api-client/internal/logger"
	"github.com/dvcrn/hrms-api-client/internal/mockapi"
)

const devSecret = "hrms-dev-secret"

func main() {
	port := env.GetOrDefault("PORT", "5000")

	secret, ok := env.Get("HRMS_MOCK_SECRET")
	if !ok {
		logger.Get().Warn().Msg("HRMS_MOCK_SECRET not set, signing tokens with the development secret")
		secret = devSecret
	}

	srv, err := mockapi.NewServer(secret)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create mock API")
	}

	if err := srv.Start(":" + port); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to start server")
	}
}
