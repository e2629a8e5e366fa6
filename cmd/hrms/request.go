package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dvcrn/hrms-api-client/internal/apiclient"
)

// newRequestCmd returns a raw request command for one HTTP method, e.g.
// "hrms get /employees --query status=active".
func newRequestCmd(a *app, method string) *cobra.Command {
	var (
		data    string
		query   []string
		headers []string
	)
	hasBody := method == "post" || method == "put" || method == "patch"

	cmd := &cobra.Command{
		Use:   method + " PATH",
		Short: "Send a " + strings.ToUpper(method) + " request and print the JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := apiclient.RequestConfig{Method: method, URL: args[0]}

			if len(query) > 0 {
				rc.Query = url.Values{}
				for _, kv := range query {
					k, v, err := splitPair(kv)
					if err != nil {
						return fmt.Errorf("--query: %w", err)
					}
					rc.Query.Add(k, v)
				}
			}
			if len(headers) > 0 {
				rc.Header = make(map[string]string, len(headers))
				for _, kv := range headers {
					k, v, err := splitPair(kv)
					if err != nil {
						return fmt.Errorf("--header: %w", err)
					}
					rc.Header[k] = v
				}
			}
			if data != "" {
				body, err := readData(data, cmd.InOrStdin())
				if err != nil {
					return err
				}
				rc.Body = body
			}

			var out json.RawMessage
			if err := a.api.Do(cmd.Context(), rc, &out); err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as key=value (repeatable)")
	if hasBody {
		cmd.Flags().StringVar(&data, "data", "", "JSON body, @file to read a file, or - for stdin")
	}

	return cmd
}

func splitPair(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", s)
	}
	return k, v, nil
}

// readData resolves a --data value into a JSON document.
func readData(data string, stdin io.Reader) (json.RawMessage, error) {
	var raw []byte
	switch {
	case data == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	case strings.HasPrefix(data, "@"):
		b, err := os.ReadFile(strings.TrimPrefix(data, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read body file: %w", err)
		}
		raw = b
	default:
		raw = []byte(data)
	}

	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, errors.New("--data is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func printRaw(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
