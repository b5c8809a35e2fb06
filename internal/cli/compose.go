package cli

import (
	"fmt"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newComposeCommand() *cobra.Command {
	var (
		statementType string
		standard      string
		from          string
		to            string
		previous      string
	)

	cmd := &cobra.Command{
		Use:   "compose <trial-balance.json>",
		Short: "Compose a financial statement from a trial balance",
		Long: `Reads a trial balance (companyID, asOf, currency and lines of accountCode,
accountName, totalDebit, totalCredit) and prints the composed statement.

Types: balance-sheet, income-statement, cash-flow. The cash flow needs the
trial balance at the end of the previous period through --previous.`,
		Example: `  ecompta compose --type balance-sheet tb-2024.json
  ecompta compose --type income-statement --from 2024-01-01 --to 2024-12-31 activity-2024.json
  ecompta compose --type cash-flow --previous tb-2023.json --from 2024-01-01 --to 2024-12-31 tb-2024.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}
			composer := statements.NewComposer(registry)

			current, err := readTrialBalance(args[0], cmd)
			if err != nil {
				return err
			}
			std := domain.NormalizeStandard(standard)

			var statement *domain.FinancialStatement
			switch statementType {
			case "balance-sheet":
				statement, err = composer.ComposeBalanceSheet(current, std)
			case "income-statement":
				start, end, perr := period(from, to, current.AsOf)
				if perr != nil {
					return perr
				}
				statement, err = composer.ComposeIncomeStatement(current, std, start, end)
			case "cash-flow":
				if previous == "" {
					return fmt.Errorf("--previous is required for a cash-flow statement")
				}
				prev, perr := readTrialBalance(previous, cmd)
				if perr != nil {
					return perr
				}
				start, end, perr := period(from, to, current.AsOf)
				if perr != nil {
					return perr
				}
				statement, err = composer.ComposeCashFlow(current, prev, std, start, end)
			default:
				return fmt.Errorf("unknown statement type %q", statementType)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), statement)
		},
	}

	cmd.Flags().StringVarP(&statementType, "type", "t", "balance-sheet", "balance-sheet, income-statement or cash-flow")
	cmd.Flags().StringVar(&standard, "standard", string(domain.StandardSYSCOHADA), "Accounting standard of the mapping table")
	cmd.Flags().StringVar(&from, "from", "", "Period start (YYYY-MM-DD), defaults to January 1st of the as-of year")
	cmd.Flags().StringVar(&to, "to", "", "Period end (YYYY-MM-DD), defaults to the as-of date")
	cmd.Flags().StringVar(&previous, "previous", "", "Trial balance at the end of the previous period (cash flow only)")
	return cmd
}

// readTrialBalance rebuilds every line from its totals so net balance and side are always consistent.
func readTrialBalance(path string, cmd *cobra.Command) (domain.TrialBalance, error) {
	var tb domain.TrialBalance
	if err := readJSON(path, cmd.InOrStdin(), &tb); err != nil {
		return domain.TrialBalance{}, err
	}
	for i, l := range tb.Lines {
		tb.Lines[i] = domain.NewTrialBalanceLine(l.AccountCode, l.AccountName, l.TotalDebit, l.TotalCredit)
	}
	tb.SortLines()
	return tb, nil
}

func period(from, to string, asOf time.Time) (time.Time, time.Time, error) {
	end := asOf
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date, use YYYY-MM-DD: %w", err)
		}
		end = t
	}
	start := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date, use YYYY-MM-DD: %w", err)
		}
		start = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("period start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}
