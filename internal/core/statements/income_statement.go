package statements

import (
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComposeIncomeStatement maps the result-class accounts of tb to income statement lines and
// evaluates the standard's subtotal formulas. The last subtotal is the net result; it also absorbs
// unclassified result-class balances so that it always equals credits minus debits of those classes.
func (c *Composer) ComposeIncomeStatement(tb domain.TrialBalance, standard domain.AccountingStandard, periodStart, periodEnd time.Time) (*domain.FinancialStatement, error) {
	def, err := c.registry.Lookup(standard)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(def.IncomeStatement.Sections)
	for _, line := range sortedTrialLines(tb) {
		if !def.IsResultClass(line.Class()) {
			continue
		}
		sd := line.SignedDebit()
		ref, ok := def.incomeIndex.match(line.AccountCode)
		if !ok {
			acc.addUnclassified(sd, line.AccountCode)
			continue
		}
		acc.add(ref, sd, line.AccountCode)
	}

	values := make(map[string]decimal.Decimal)
	sections := acc.build(values)
	totals := evaluate(def.IncomeStatement.Subtotals, values)
	if acc.hasUnclassified() {
		net := &totals[len(totals)-1]
		net.Amount = net.Amount.Sub(acc.unclassified)
	}

	start := periodStart
	return &domain.FinancialStatement{
		Type:      domain.IncomeStatement,
		Standard:  def.Standard,
		CompanyID: tb.CompanyID,
		Currency:  tb.Currency,
		Period:    domain.Period{Start: &start, End: periodEnd},
		Sections:  sections,
		Totals:    totals,
	}, nil
}
