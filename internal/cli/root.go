// Package cli implements the ecompta command line tool. It runs the ledger
// validator and the statement composer on JSON files, without a database.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// NewRootCommand builds the command tree. The registry is loaded lazily so that
// --help works even when the embedded definitions are broken.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ecompta",
		Short: "Validate journal entries and compose financial statements offline",
		Long: `ecompta checks journal entries against the double-entry rules and composes
balance sheets, income statements and cash-flow statements from trial balances,
for the SYSCOHADA, PCG and IFRS mapping tables shipped with the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")

	rootCmd.AddCommand(newValidateCommand(), newComposeCommand(), newStandardsCommand())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadRegistry() (*statements.Registry, error) {
	registry, err := statements.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load statement definitions: %w", err)
	}
	return registry, nil
}

// readJSON decodes path into v. "-" reads from in.
func readJSON(path string, in io.Reader, v any) error {
	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
