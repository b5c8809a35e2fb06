package statements

import (
	"sort"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Composer turns trial balances into financial statements using the registry's mapping tables.
// It keeps no state besides the registry and is safe for concurrent use.
type Composer struct {
	registry *Registry
}

// NewComposer creates a Composer over registry.
func NewComposer(registry *Registry) *Composer {
	return &Composer{registry: registry}
}

// Registry exposes the definitions the composer maps with.
func (c *Composer) Registry() *Registry {
	return c.registry
}

// signFactor is +1 for debit-positive lines and -1 for credit-positive ones.
func signFactor(sign domain.Direction) decimal.Decimal {
	if sign == domain.Credit {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// accumulator collects amounts and contributing accounts per definition line.
type accumulator struct {
	sections     []SectionDef
	amounts      [][]decimal.Decimal
	accounts     [][][]string
	unclassified decimal.Decimal
	unclassAccts []string
}

func newAccumulator(sections []SectionDef) *accumulator {
	a := &accumulator{
		sections:     sections,
		amounts:      make([][]decimal.Decimal, len(sections)),
		accounts:     make([][][]string, len(sections)),
		unclassified: decimal.Zero,
	}
	for i, sec := range sections {
		a.amounts[i] = make([]decimal.Decimal, len(sec.Lines))
		a.accounts[i] = make([][]string, len(sec.Lines))
		for j := range sec.Lines {
			a.amounts[i][j] = decimal.Zero
		}
	}
	return a
}

// add accumulates a debit-positive amount, converted to the line's sign convention.
func (a *accumulator) add(ref lineRef, debitPositive decimal.Decimal, account string) {
	line := a.sections[ref.section].Lines[ref.line]
	a.addRaw(ref, debitPositive.Mul(signFactor(line.Sign)), account)
}

// addRaw accumulates an amount already expressed in the line's convention.
func (a *accumulator) addRaw(ref lineRef, amount decimal.Decimal, account string) {
	a.amounts[ref.section][ref.line] = a.amounts[ref.section][ref.line].Add(amount)
	if account != "" {
		a.accounts[ref.section][ref.line] = appendUnique(a.accounts[ref.section][ref.line], account)
	}
}

func (a *accumulator) addUnclassified(amount decimal.Decimal, account string) {
	a.unclassified = a.unclassified.Add(amount)
	a.unclassAccts = appendUnique(a.unclassAccts, account)
}

func (a *accumulator) hasUnclassified() bool {
	return len(a.unclassAccts) > 0
}

// build renders the sections in declared order, lines by displayOrder.
// values receives every line amount by code, for subtotal formulas.
func (a *accumulator) build(values map[string]decimal.Decimal) []domain.StatementSection {
	out := make([]domain.StatementSection, 0, len(a.sections)+1)
	for si, sec := range a.sections {
		section := domain.StatementSection{
			Code:  sec.Code,
			Label: sec.Label,
			Lines: make([]domain.StatementLine, 0, len(sec.Lines)),
			Total: decimal.Zero,
		}
		for _, li := range sortedLines(sec) {
			def := sec.Lines[li]
			amount := a.amounts[si][li]
			section.Lines = append(section.Lines, domain.StatementLine{
				Code:         def.Code,
				Label:        def.Label,
				Amount:       amount,
				DisplayOrder: def.DisplayOrder,
				Accounts:     sortedCopy(a.accounts[si][li]),
			})
			section.Total = section.Total.Add(amount)
			if values != nil {
				values[def.Code] = amount
			}
		}
		out = append(out, section)
	}
	if a.hasUnclassified() {
		out = append(out, domain.StatementSection{
			Code:  UnclassifiedCode,
			Label: UnclassifiedLabel,
			Lines: []domain.StatementLine{{
				Code:         UnclassifiedCode,
				Label:        UnclassifiedLabel,
				Amount:       a.unclassified,
				DisplayOrder: 0,
				Accounts:     sortedCopy(a.unclassAccts),
			}},
			Total: a.unclassified,
		})
	}
	return out
}

// evaluate computes subtotals in declaration order. Earlier results are visible to later formulas.
func evaluate(subtotals []SubtotalDef, values map[string]decimal.Decimal) []domain.StatementTotal {
	out := make([]domain.StatementTotal, 0, len(subtotals))
	for _, st := range subtotals {
		sum := decimal.Zero
		for _, term := range st.Terms {
			// Terms were checked when the definition was compiled.
			sign, ref, _ := parseTerm(term)
			sum = sum.Add(values[ref].Mul(decimal.NewFromInt(sign)))
		}
		values[st.Code] = sum
		out = append(out, domain.StatementTotal{Code: st.Code, Label: st.Label, Amount: sum})
	}
	return out
}

// sortedTrialLines returns a copy of the lines ordered by account code.
func sortedTrialLines(tb domain.TrialBalance) []domain.TrialBalanceLine {
	lines := make([]domain.TrialBalanceLine, len(tb.Lines))
	copy(lines, tb.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].AccountCode < lines[j].AccountCode })
	return lines
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func sortedCopy(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}

func boolPtr(b bool) *bool {
	return &b
}
