// Package cli implements the injectcheck command tree for offline mapping and
// validation of AI injection payloads.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/facemap/backend/internal/payload"
)

// ErrBlockingFindings is returned by validate when the plan has danger-zone errors.
var ErrBlockingFindings = errors.New("validation found blocking errors")

const (
	outputText = "text"
	outputJSON = "json"
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	output  string
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "injectcheck",
		Short:         "Map and validate AI-proposed injection points",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("unsupported output format %q (want %s or %s)", opts.output, outputText, outputJSON)
			}
			opts.logger = zap.NewNop()
			if opts.verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
				opts.logger = logger
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text or json")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log parser diagnostics to stderr")

	cmd.AddCommand(
		newValidateCommand(opts),
		newMapCommand(opts),
		newZonesCommand(opts),
	)
	return cmd
}

// loadPoints reads a payload from the named file, or stdin when no file or
// "-" is given, and parses it.
func loadPoints(cmd *cobra.Command, args []string, opts *rootOptions) (*payload.Result, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	result, err := payload.Parse(data)
	if err != nil {
		return nil, err
	}
	for _, r := range result.Rejected {
		opts.logger.Warn("Skipped injection point", zap.Int("index", r.Index), zap.String("reason", r.Reason))
	}
	opts.logger.Debug("Parsed payload",
		zap.Int("points", len(result.Points)),
		zap.Bool("normalized_input", result.Normalized),
	)
	return result, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
