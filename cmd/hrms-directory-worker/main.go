//go:build js && wasm

// Command hrms-directory-worker is a Cloudflare Worker that publishes a
// read-only employee directory fetched from the HRMS API. The bearer token is
// read from KV, where it is provisioned out of band.
package main

import (
	"encoding/json"
	"net/http"

	"github.com/syumai/workers"

	"github.com/dvcrn/hrms-api-client/internal/apiclient"
	"github.com/dvcrn/hrms-api-client/internal/config"
	"github.com/dvcrn/hrms-api-client/internal/hr"
	"github.com/dvcrn/hrms-api-client/internal/logger"
	"github.com/dvcrn/hrms-api-client/internal/session"
)

// directoryEntry is the public subset of an employee record.
type directoryEntry struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load config")
	}

	store, err := session.NewKVStore(session.DefaultKVNamespace)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to open session store")
	}

	api, err := apiclient.NewFromConfig(cfg, apiclient.WithSession(store))
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create API client")
	}
	svc := hr.NewService(api)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /directory", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		employees, err := svc.ListEmployees(r.Context(), hr.EmployeeFilter{
			Search:     q.Get("search"),
			Department: q.Get("department"),
			Status:     "active",
		})
		if err != nil {
			status := apiclient.StatusOf(err)
			if status == 0 || status == http.StatusUnauthorized {
				status = http.StatusBadGateway
			}
			writeJSON(w, status, map[string]string{"message": err.Error()})
			return
		}

		entries := make([]directoryEntry, 0, len(employees))
		for _, e := range employees {
			entries = append(entries, directoryEntry{Name: e.Name, Email: e.Email, Department: e.Department, Position: e.Position})
		}
		writeJSON(w, http.StatusOK, entries)
	})

	workers.Serve(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
