package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dvcrn/hrms-api-client/internal/apiclient"
	"github.com/dvcrn/hrms-api-client/internal/config"
	"github.com/dvcrn/hrms-api-client/internal/hr"
	"github.com/dvcrn/hrms-api-client/internal/navigation"
	"github.com/dvcrn/hrms-api-client/internal/session"
)

// app holds the flags and the client shared by every subcommand.
type app struct {
	baseURL   string
	tokenFile string
	timeout   time.Duration
	retries   int
	debug     bool

	api *apiclient.Client
	svc *hr.Service
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "hrms",
		Short:         "Command line client for the HRMS API",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return a.connect(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", "", "HRMS API base URL (default $HRMS_API_BASE_URL or "+config.DefaultBaseURL+")")
	flags.StringVar(&a.tokenFile, "token-file", "", "Session file (default $HRMS_TOKEN_PATH or ~/.hrms/session.json)")
	flags.DurationVar(&a.timeout, "timeout", 0, "Per-attempt timeout (default $HRMS_TIMEOUT or 30s)")
	flags.IntVar(&a.retries, "retries", -1, "Retries after a network failure (default $HRMS_MAX_RETRIES or 2)")
	flags.BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd(a))
	rootCmd.AddCommand(newLogoutCmd(a))
	rootCmd.AddCommand(newWhoamiCmd(a))
	for _, method := range []string{"get", "post", "put", "patch", "delete"} {
		rootCmd.AddCommand(newRequestCmd(a, method))
	}
	rootCmd.AddCommand(newEmployeesCmd(a))
	rootCmd.AddCommand(newDepartmentsCmd(a))
	rootCmd.AddCommand(newLeavesCmd(a))

	return rootCmd
}

// connect builds the API client from config, with flags taking precedence.
func (a *app) connect(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	if a.tokenFile != "" {
		cfg.TokenPath = a.tokenFile
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	if a.retries >= 0 {
		cfg.MaxRetries = a.retries
	}

	store, err := session.NewFileStore(cfg.TokenPath)
	if err != nil {
		return err
	}

	a.api, err = apiclient.NewFromConfig(cfg,
		apiclient.WithSession(store),
		apiclient.WithNavigator(navigation.Terminal{Out: cmd.ErrOrStderr(), Path: commandRoute(cmd)}),
	)
	if err != nil {
		return err
	}
	a.svc = hr.NewService(a.api)
	return nil
}

// commandRoute renders "hrms employees list" as "/employees/list", the
// location a re-login returns to.
func commandRoute(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	return "/" + strings.Join(parts[1:], "/")
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
