//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/dvcrn/hrms-api-client/internal/env"
	"github.com/dvcrn/hrms-api-client/internal/logger"
	"github.com/dvcrn/hrms-api-client/internal/mockapi"
)

func main() {
	secret, ok := env.Get("HRMS_MOCK_SECRET")
	if !ok {
		logger.Get().Fatal().Msg("HRMS_MOCK_SECRET must be set as a Workers secret")
	}

	srv, err := mockapi.NewServer(secret)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create mock API")
	}

	// Serve using workers - it handles all the HTTP server setup
	workers.Serve(srv.Handler())
}
