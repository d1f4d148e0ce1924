// Package main is the entry point for the invoke binary.
// It runs a Lambda@Edge event file through the header policy locally.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"edge-header-policy/internal/config"
	"edge-header-policy/internal/models"
	"edge-header-policy/internal/services"
	"edge-header-policy/pkg/lambda"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "invoke",
		Short: "Apply the edge header policy to a Lambda@Edge event",
		Long: `Reads a CloudFront Lambda@Edge event from a file or stdin, runs it through
the response header policy and prints the resulting response.

Example:
  invoke --event testdata/redirect.yaml --output json
  cat event.json | invoke`,
		SilenceUsage: true,
		RunE:         runInvoke,
	}

	rootCmd.Flags().StringP("event", "e", "-", "Path to the event file, or - for stdin")
	rootCmd.Flags().String("input-format", "", "Event format (json, yaml); detected from the file extension when empty")
	rootCmd.Flags().StringP("output", "o", formatJSON, "Output format (json, yaml)")
	rootCmd.Flags().StringP("log-level", "l", "warn", "Log level (debug, info, warn, error)")

	return rootCmd
}

func runInvoke(cmd *cobra.Command, _ []string) error {
	eventPath, _ := cmd.Flags().GetString("event")
	inputFormat, _ := cmd.Flags().GetString("input-format")
	output, _ := cmd.Flags().GetString("output")
	logLevel, _ := cmd.Flags().GetString("log-level")

	logger, err := config.NewLogger(config.LoggingConfig{Level: logLevel, Format: "text"}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	data, err := readEvent(cmd.InOrStdin(), eventPath)
	if err != nil {
		return err
	}

	if inputFormat == "" {
		inputFormat = detectFormat(eventPath)
	}

	event, err := decodeEvent(data, inputFormat)
	if err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	handler := lambda.NewHandler(services.NewHeaderPolicyService(logger), logger)
	resp, err := handler.Handle(context.Background(), *event)
	if err != nil {
		return err
	}

	return encodeResponse(cmd.OutOrStdout(), resp, output)
}

func readEvent(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read event from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}
	return data, nil
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func decodeEvent(data []byte, format string) (*models.Event, error) {
	var event models.Event

	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("failed to parse JSON event: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("failed to parse YAML event: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	return &event, nil
}

func encodeResponse(w io.Writer, resp *models.Response, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(resp)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
