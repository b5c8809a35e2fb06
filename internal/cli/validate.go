package cli

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ErrRejected is returned by the validate command when the entry is not accepted.
var ErrRejected = errors.New("entry rejected")

func newValidateCommand() *cobra.Command {
	var (
		standard  string
		currency  string
		tolerance string
		chart     []string
	)

	cmd := &cobra.Command{
		Use:   "validate <entry.json>",
		Short: "Check a journal entry and print the validation result",
		Long: `Reads an entry in the same JSON shape as the API (entryDate, description,
currencyCode, standard, postings) and prints the validation result. The command
fails when the entry is rejected. Use "-" to read from stdin.`,
		Example: `  ecompta validate entry.json
  ecompta validate --standard PCG --chart 512000,706000 entry.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}
			tol, err := decimal.NewFromString(tolerance)
			if err != nil || tol.IsNegative() {
				return errors.New("tolerance must be a non-negative decimal")
			}

			var req dto.EntryRequest
			if err := readJSON(args[0], cmd.InOrStdin(), &req); err != nil {
				return err
			}

			entry := req.ToEntry("", currency, domain.NormalizeStandard(standard))
			validator := ledger.NewValidator(registry, ledger.WithTolerance(tol))

			var result ledger.ValidationResult
			if len(chart) > 0 {
				result = validator.ValidateInChart(entry, ledger.NewChartSet(chart...))
			} else {
				result = validator.Validate(entry)
			}
			slog.Debug("Entry validated", slog.String("status", string(result.Status)), slog.Int("postings", len(entry.Postings)))

			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.OK() {
				return ErrRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&standard, "standard", string(domain.StandardSYSCOHADA), "Standard used when the entry does not name one")
	cmd.Flags().StringVar(&currency, "currency", "XOF", "Currency used when the entry does not name one")
	cmd.Flags().StringVar(&tolerance, "tolerance", "0", "Accepted debit/credit difference")
	cmd.Flags().StringSliceVar(&chart, "chart", nil, "Comma separated account codes; postings on other codes are rejected")
	return cmd
}
