package statements

import (
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComposeBalanceSheet maps every trial balance account to a balance sheet line by longest prefix.
// Result-class accounts are not mapped one by one: their net flows into the definition's result line.
// Accounts without a mapping end up in the Unclassified section.
func (c *Composer) ComposeBalanceSheet(tb domain.TrialBalance, standard domain.AccountingStandard) (*domain.FinancialStatement, error) {
	def, err := c.registry.Lookup(standard)
	if err != nil {
		return nil, err
	}

	sections := def.BalanceSheet.Sections
	acc := newAccumulator(sections)
	resultRef, _ := findLine(sections, def.BalanceSheet.ResultLine)

	for _, line := range sortedTrialLines(tb) {
		sd := line.SignedDebit()
		if def.IsResultClass(line.Class()) {
			acc.add(resultRef, sd, line.AccountCode)
			continue
		}
		ref, ok := def.balanceIndex.match(line.AccountCode)
		if !ok {
			acc.addUnclassified(sd, line.AccountCode)
			continue
		}
		acc.add(ref, sd, line.AccountCode)
	}

	stmt := &domain.FinancialStatement{
		Type:      domain.BalanceSheet,
		Standard:  def.Standard,
		CompanyID: tb.CompanyID,
		Currency:  tb.Currency,
		Period:    domain.Period{End: tb.AsOf},
		Sections:  acc.build(nil),
	}

	assets, liabilities := decimal.Zero, decimal.Zero
	for i, sec := range sections {
		switch sec.Side {
		case SideAssets:
			assets = assets.Add(stmt.Sections[i].Total)
		case SideLiabilities:
			liabilities = liabilities.Add(stmt.Sections[i].Total)
		}
	}
	stmt.Totals = []domain.StatementTotal{
		{Code: TotalAssets, Label: "Total assets", Amount: assets},
		{Code: TotalLiabilitiesEquity, Label: "Total equity and liabilities", Amount: liabilities},
	}
	stmt.Balanced = boolPtr(assets.Equal(liabilities))
	return stmt, nil
}

func findLine(sections []SectionDef, code string) (lineRef, bool) {
	for si, sec := range sections {
		for li, l := range sec.Lines {
			if l.Code == code {
				return lineRef{section: si, line: li}, true
			}
		}
	}
	return lineRef{}, false
}
