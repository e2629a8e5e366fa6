package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvcrn/hrms-api-client/internal/env"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password, _ = env.Get("HRMS_PASSWORD")
			}
			if password == "" {
				return errors.New("password required: pass --password or set HRMS_PASSWORD")
			}

			res, err := a.svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.User.Name, res.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (default $HRMS_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.svc.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.svc.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}
