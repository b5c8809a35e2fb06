package statements

import (
	"sort"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComposeCashFlow builds an indirect-method cash-flow statement from the trial balances at the
// start and end of the period. Every line shows the cash effect of its accounts, the opposite of
// their debit-balance change. Result classes flow through the net result line, treasury accounts
// make the opening and closing positions, anything else unmapped is Unclassified. The net change
// therefore always equals the treasury variation when both trial balances are balanced.
func (c *Composer) ComposeCashFlow(current, previous domain.TrialBalance, standard domain.AccountingStandard, periodStart, periodEnd time.Time) (*domain.FinancialStatement, error) {
	def, err := c.registry.Lookup(standard)
	if err != nil {
		return nil, err
	}

	before := make(map[string]decimal.Decimal, len(previous.Lines))
	for _, l := range previous.Lines {
		before[l.AccountCode] = before[l.AccountCode].Add(l.SignedDebit())
	}
	after := make(map[string]decimal.Decimal, len(current.Lines))
	for _, l := range current.Lines {
		after[l.AccountCode] = after[l.AccountCode].Add(l.SignedDebit())
	}
	codes := make([]string, 0, len(after)+len(before))
	for code := range after {
		codes = append(codes, code)
	}
	for code := range before {
		if _, seen := after[code]; !seen {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	sections := def.CashFlow.Sections
	acc := newAccumulator(sections)
	netRef := netResultLine(sections)
	opening, closing := decimal.Zero, decimal.Zero

	for _, code := range codes {
		prev, cur := before[code], after[code]
		effect := prev.Sub(cur)
		if def.IsResultClass(domain.ClassOf(code)) {
			acc.addRaw(netRef, effect, nonZeroAccount(code, effect))
			continue
		}
		ref, ok := def.cashIndex.match(code)
		switch {
		case ok && ref == treasuryRef:
			opening = opening.Add(prev)
			closing = closing.Add(cur)
		case ok:
			acc.addRaw(ref, effect, nonZeroAccount(code, effect))
		case !effect.IsZero():
			acc.addUnclassified(effect, code)
		}
	}

	values := make(map[string]decimal.Decimal)
	built := acc.build(values)
	totals := evaluate(def.CashFlow.Subtotals, values)

	netChange := decimal.Zero
	for _, sec := range built {
		netChange = netChange.Add(sec.Total)
	}
	totals = append(totals,
		domain.StatementTotal{Code: TotalNetChange, Label: "Net change in treasury", Amount: netChange},
		domain.StatementTotal{Code: TotalTreasuryOpening, Label: "Opening treasury", Amount: opening},
		domain.StatementTotal{Code: TotalTreasuryClosing, Label: "Closing treasury", Amount: closing},
	)

	start := periodStart
	return &domain.FinancialStatement{
		Type:      domain.CashFlow,
		Standard:  def.Standard,
		CompanyID: current.CompanyID,
		Currency:  current.Currency,
		Period:    domain.Period{Start: &start, End: periodEnd},
		Sections:  built,
		Totals:    totals,
		Balanced:  boolPtr(netChange.Equal(closing.Sub(opening))),
	}, nil
}

func netResultLine(sections []SectionDef) lineRef {
	for si, sec := range sections {
		for li, l := range sec.Lines {
			if l.Kind == KindNetResult {
				return lineRef{section: si, line: li}
			}
		}
	}
	// compile guarantees exactly one net result line
	return lineRef{}
}

// nonZeroAccount keeps accounts without movement out of the contributing lists.
func nonZeroAccount(code string, effect decimal.Decimal) string {
	if effect.IsZero() {
		return ""
	}
	return code
}
