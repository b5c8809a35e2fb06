package statements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
)

// Section sides of a balance sheet.
const (
	SideAssets      = "ASSETS"
	SideLiabilities = "LIABILITIES" // Equity and liabilities
)

// Line kinds of a cash-flow statement.
const (
	KindDelta     = "DELTA"
	KindNetResult = "NET_RESULT"
)

// Codes the composer emits on top of the definition lines.
const (
	UnclassifiedCode  = "UNCLASSIFIED"
	UnclassifiedLabel = "Unclassified"

	TotalAssets            = "TOTAL_ASSETS"
	TotalLiabilitiesEquity = "TOTAL_LIABILITIES_EQUITY"
	TotalNetChange         = "NET_CHANGE"
	TotalTreasuryOpening   = "TREASURY_OPENING"
	TotalTreasuryClosing   = "TREASURY_CLOSING"
)

// Definition is the mapping table of one accounting standard, as declared in its YAML asset.
type Definition struct {
	Standard        domain.AccountingStandard `yaml:"standard"`
	Label           string                    `yaml:"label"`
	Numbering       NumberingDef              `yaml:"numbering"`
	ResultClasses   []int                     `yaml:"resultClasses"`
	BalanceSheet    BalanceSheetDef           `yaml:"balanceSheet"`
	IncomeStatement IncomeStatementDef        `yaml:"incomeStatement"`
	CashFlow        CashFlowDef               `yaml:"cashFlow"`

	rules         ledger.NumberingRules
	resultClasses map[domain.AccountClass]bool
	balanceIndex  prefixIndex
	incomeIndex   prefixIndex
	cashIndex     prefixIndex
}

// NumberingDef is the account code format of the standard.
type NumberingDef struct {
	Pattern   string `yaml:"pattern"`
	MinLength int    `yaml:"minLength"`
	MaxLength int    `yaml:"maxLength"`
}

// LineDef maps account code prefixes to a statement line item.
type LineDef struct {
	Code         string           `yaml:"code"`
	Label        string           `yaml:"label"`
	Sign         domain.Direction `yaml:"sign"` // Side on which the line shows positive amounts
	DisplayOrder int              `yaml:"displayOrder"`
	Prefixes     []string         `yaml:"prefixes"`
	Kind         string           `yaml:"kind"` // Cash flow only
}

// SectionDef groups line items.
type SectionDef struct {
	Code  string    `yaml:"code"`
	Label string    `yaml:"label"`
	Side  string    `yaml:"side"` // Balance sheet only
	Lines []LineDef `yaml:"lines"`
}

// SubtotalDef is a fixed formula: signed references to line codes or earlier subtotals, e.g. "+TA", "-RA".
type SubtotalDef struct {
	Code  string   `yaml:"code"`
	Label string   `yaml:"label"`
	Terms []string `yaml:"terms"`
}

type BalanceSheetDef struct {
	ResultLine string       `yaml:"resultLine"` // Equity line receiving the net of result classes
	Sections   []SectionDef `yaml:"sections"`
}

type IncomeStatementDef struct {
	Sections  []SectionDef  `yaml:"sections"`
	Subtotals []SubtotalDef `yaml:"subtotals"` // The last one is the net result
}

type CashFlowDef struct {
	TreasuryPrefixes []string      `yaml:"treasuryPrefixes"`
	Sections         []SectionDef  `yaml:"sections"`
	Subtotals        []SubtotalDef `yaml:"subtotals"`
}

// Rules returns the compiled numbering rules.
func (d *Definition) Rules() ledger.NumberingRules {
	return d.rules
}

// IsResultClass reports whether accounts of the class flow to the income statement.
func (d *Definition) IsResultClass(c domain.AccountClass) bool {
	return d.resultClasses[c]
}

// NetResultCode is the code of the income statement net result.
func (d *Definition) NetResultCode() string {
	subs := d.IncomeStatement.Subtotals
	return subs[len(subs)-1].Code
}

// lineRef locates a line inside a statement definition.
type lineRef struct {
	section int
	line    int
}

// treasuryRef marks cash-flow prefixes that belong to treasury rather than to a flow line.
var treasuryRef = lineRef{section: -1, line: -1}

// prefixIndex resolves an account code to a line by longest prefix.
type prefixIndex map[string]lineRef

func (idx prefixIndex) add(prefix string, ref lineRef, statement string) error {
	if prefix == "" || strings.Trim(prefix, "0123456789") != "" {
		return fmt.Errorf("%s: prefix %q must be a non-empty string of digits", statement, prefix)
	}
	if _, dup := idx[prefix]; dup {
		return fmt.Errorf("%s: prefix %q is mapped more than once", statement, prefix)
	}
	idx[prefix] = ref
	return nil
}

// match returns the line whose prefix is the longest prefix of code.
func (idx prefixIndex) match(code string) (lineRef, bool) {
	for n := len(code); n > 0; n-- {
		if ref, ok := idx[code[:n]]; ok {
			return ref, true
		}
	}
	return lineRef{}, false
}

// compile checks the definition and builds its lookup tables.
func (d *Definition) compile() error {
	d.Standard = domain.NormalizeStandard(string(d.Standard))
	if d.Standard == "" {
		return fmt.Errorf("definition without standard")
	}

	rules, err := ledger.NewNumberingRules(d.Standard, d.Numbering.Pattern, d.Numbering.MinLength, d.Numbering.MaxLength)
	if err != nil {
		return err
	}
	d.rules = rules

	if len(d.ResultClasses) == 0 {
		return fmt.Errorf("%s: resultClasses is empty", d.Standard)
	}
	d.resultClasses = make(map[domain.AccountClass]bool, len(d.ResultClasses))
	for _, c := range d.ResultClasses {
		if c < 1 || c > 9 {
			return fmt.Errorf("%s: result class %d out of range", d.Standard, c)
		}
		d.resultClasses[domain.AccountClass(c)] = true
	}

	if d.balanceIndex, err = compileSections("balanceSheet", d.BalanceSheet.Sections, true); err != nil {
		return fmt.Errorf("%s: %w", d.Standard, err)
	}
	if !hasLine(d.BalanceSheet.Sections, d.BalanceSheet.ResultLine) {
		return fmt.Errorf("%s: balanceSheet.resultLine %q is not a declared line", d.Standard, d.BalanceSheet.ResultLine)
	}

	if d.incomeIndex, err = compileSections("incomeStatement", d.IncomeStatement.Sections, false); err != nil {
		return fmt.Errorf("%s: %w", d.Standard, err)
	}
	if len(d.IncomeStatement.Subtotals) == 0 {
		return fmt.Errorf("%s: incomeStatement needs at least the net result subtotal", d.Standard)
	}
	if err := checkSubtotals("incomeStatement", d.IncomeStatement.Sections, d.IncomeStatement.Subtotals); err != nil {
		return fmt.Errorf("%s: %w", d.Standard, err)
	}

	if d.cashIndex, err = compileSections("cashFlow", d.CashFlow.Sections, false); err != nil {
		return fmt.Errorf("%s: %w", d.Standard, err)
	}
	if len(d.CashFlow.TreasuryPrefixes) == 0 {
		return fmt.Errorf("%s: cashFlow.treasuryPrefixes is empty", d.Standard)
	}
	for _, p := range d.CashFlow.TreasuryPrefixes {
		if err := d.cashIndex.add(p, treasuryRef, "cashFlow"); err != nil {
			return fmt.Errorf("%s: %w", d.Standard, err)
		}
	}
	netLines := 0
	for _, sec := range d.CashFlow.Sections {
		for _, l := range sec.Lines {
			switch l.Kind {
			case KindNetResult:
				netLines++
			case "", KindDelta:
			default:
				return fmt.Errorf("%s: cashFlow line %s has unknown kind %q", d.Standard, l.Code, l.Kind)
			}
		}
	}
	if netLines != 1 {
		return fmt.Errorf("%s: cashFlow needs exactly one %s line, got %d", d.Standard, KindNetResult, netLines)
	}
	if err := checkSubtotals("cashFlow", d.CashFlow.Sections, d.CashFlow.Subtotals); err != nil {
		return fmt.Errorf("%s: %w", d.Standard, err)
	}
	return nil
}

func compileSections(statement string, sections []SectionDef, balanceSheet bool) (prefixIndex, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%s has no sections", statement)
	}
	idx := prefixIndex{}
	codes := map[string]bool{UnclassifiedCode: true}
	for si, sec := range sections {
		if sec.Code == "" {
			return nil, fmt.Errorf("%s: section %d has no code", statement, si)
		}
		if balanceSheet && sec.Side != SideAssets && sec.Side != SideLiabilities {
			return nil, fmt.Errorf("%s: section %s has side %q, want %s or %s", statement, sec.Code, sec.Side, SideAssets, SideLiabilities)
		}
		for li, l := range sec.Lines {
			if l.Code == "" || codes[l.Code] {
				return nil, fmt.Errorf("%s: line code %q is empty or reused", statement, l.Code)
			}
			codes[l.Code] = true
			if l.Sign != "" && !l.Sign.IsValid() {
				return nil, fmt.Errorf("%s: line %s has sign %q", statement, l.Code, l.Sign)
			}
			for _, p := range l.Prefixes {
				if err := idx.add(p, lineRef{section: si, line: li}, statement); err != nil {
					return nil, err
				}
			}
		}
	}
	return idx, nil
}

func hasLine(sections []SectionDef, code string) bool {
	for _, sec := range sections {
		for _, l := range sec.Lines {
			if l.Code == code {
				return true
			}
		}
	}
	return false
}

func checkSubtotals(statement string, sections []SectionDef, subtotals []SubtotalDef) error {
	known := map[string]bool{}
	for _, sec := range sections {
		for _, l := range sec.Lines {
			known[l.Code] = true
		}
	}
	for _, st := range subtotals {
		if st.Code == "" || known[st.Code] {
			return fmt.Errorf("%s: subtotal code %q is empty or reused", statement, st.Code)
		}
		if len(st.Terms) == 0 {
			return fmt.Errorf("%s: subtotal %s has no terms", statement, st.Code)
		}
		for _, term := range st.Terms {
			_, ref, err := parseTerm(term)
			if err != nil {
				return fmt.Errorf("%s: subtotal %s: %w", statement, st.Code, err)
			}
			if !known[ref] {
				return fmt.Errorf("%s: subtotal %s references %q before it is defined", statement, st.Code, ref)
			}
		}
		known[st.Code] = true
	}
	return nil
}

// parseTerm splits "+TA" into (+1, "TA").
func parseTerm(term string) (int64, string, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return 0, "", fmt.Errorf("malformed term %q", term)
	}
	switch term[0] {
	case '+':
		return 1, term[1:], nil
	case '-':
		return -1, term[1:], nil
	}
	return 0, "", fmt.Errorf("term %q must start with + or -", term)
}

// sortedLines returns the section's line indexes ordered by displayOrder, declaration order on ties.
func sortedLines(sec SectionDef) []int {
	order := make([]int, len(sec.Lines))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sec.Lines[order[a]].DisplayOrder < sec.Lines[order[b]].DisplayOrder
	})
	return order
}
