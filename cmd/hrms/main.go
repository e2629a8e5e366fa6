// Command hrms is a terminal client for the HRMS API.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dvcrn/hrms-api-client/internal/apiclient"
	"github.com/dvcrn/hrms-api-client/internal/logger"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		printError(err)
		logger.Get().Debug().Err(err).Msg("command failed")
		os.Exit(exitCode(err))
	}
}

func printError(err error) {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", apiErr.Message)
	fields := make([]string, 0, len(apiErr.Errors))
	for field := range apiErr.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", field, apiErr.Errors[field])
	}
	if len(apiErr.RawErrors) > 0 {
		fmt.Fprintf(os.Stderr, "  %s\n", apiErr.RawErrors)
	}
	if apiErr.RequestID != "" {
		fmt.Fprintln(os.Stderr, "Request ID:", apiErr.RequestID)
	}
}

// exitCode maps failures to distinct exit statuses for scripting.
func exitCode(err error) int {
	switch {
	case apiclient.IsUnauthorized(err):
		return 3
	case apiclient.IsForbidden(err):
		return 4
	case apiclient.IsNetwork(err):
		return 5
	default:
		return 1
	}
}
