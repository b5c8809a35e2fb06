package statements_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDefinition = `
standard: %s
numbering: {pattern: '^[1-7][0-9]{2,5}$', minLength: 3, maxLength: 6}
resultClasses: [6, 7]
balanceSheet:
  resultLine: EQ
  sections:
    - code: A
      side: ASSETS
      lines:
        - {code: CASH, label: Cash, sign: DEBIT, displayOrder: 1, prefixes: ["5"]}
    - code: L
      side: LIABILITIES
      lines:
        - {code: EQ, label: Equity, sign: CREDIT, displayOrder: 1, prefixes: ["1"]}
incomeStatement:
  sections:
    - code: R
      lines:
        - {code: REV, label: Revenue, sign: CREDIT, displayOrder: 1, prefixes: ["7"]}
        - {code: EXP, label: Expenses, sign: DEBIT, displayOrder: 2, prefixes: ["6"]}
  subtotals:
    - {code: NET, label: Net, terms: ["+REV", "-EXP"]}
cashFlow:
  treasuryPrefixes: ["5"]
  sections:
    - code: OPERATING
      lines:
        - {code: FA, label: Net, kind: NET_RESULT, displayOrder: 1}
        - {code: FK, label: Equity, displayOrder: 2, prefixes: ["1"]}
`

func definition(standard string) string {
	return fmt.Sprintf(minimalDefinition, standard)
}

func TestLoadDefault(t *testing.T) {
	registry, err := statements.LoadDefault()
	require.NoError(t, err)

	var names []domain.AccountingStandard
	for _, def := range registry.Standards() {
		names = append(names, def.Standard)
	}
	assert.Equal(t, []domain.AccountingStandard{domain.StandardIFRS, domain.StandardPCG, domain.StandardSYSCOHADA}, names)

	def, err := registry.Lookup(" syscohada ")
	require.NoError(t, err)
	assert.Equal(t, domain.StandardSYSCOHADA, def.Standard)
	assert.Equal(t, "NET", def.NetResultCode())
	assert.True(t, def.IsResultClass(domain.ClassExpenses))
	assert.False(t, def.IsResultClass(domain.ClassThirdParties))

	rules, ok := registry.NumberingRules(domain.StandardPCG)
	require.True(t, ok)
	assert.True(t, rules.Accepts("401000"))
	assert.False(t, rules.Accepts("901"))

	_, ok = registry.NumberingRules("US-GAAP")
	assert.False(t, ok)
	assert.False(t, registry.Has("US-GAAP"))
	assert.True(t, registry.Has("ifrs"))
}

func TestParseDefinition_Minimal(t *testing.T) {
	def, err := statements.ParseDefinition([]byte(definition("test")))
	require.NoError(t, err)
	assert.Equal(t, domain.AccountingStandard("TEST"), def.Standard)
}

func TestParseDefinition_Rejects(t *testing.T) {
	base := definition("TEST")
	cases := map[string]string{
		"duplicate prefix":    replaceOnce(base, `prefixes: ["6"]`, `prefixes: ["7"]`),
		"non digit prefix":    replaceOnce(base, `prefixes: ["5"]}`, `prefixes: ["5A"]}`),
		"missing result line": replaceOnce(base, "resultLine: EQ", "resultLine: NOPE"),
		"forward reference":   replaceOnce(base, `terms: ["+REV", "-EXP"]`, `terms: ["+REV", "-LATER"]`),
		"malformed term":      replaceOnce(base, `terms: ["+REV", "-EXP"]`, `terms: ["REV"]`),
		"bad side":            replaceOnce(base, "side: ASSETS", "side: LEFT"),
		"bad sign":            replaceOnce(base, "sign: DEBIT, displayOrder: 1, prefixes: [\"5\"]", "sign: UP, displayOrder: 1, prefixes: [\"5\"]"),
		"bad pattern":         replaceOnce(base, `'^[1-7][0-9]{2,5}$'`, `'^[1-7'`),
		"no result classes":   replaceOnce(base, "resultClasses: [6, 7]", "resultClasses: []"),
		"no net line":         replaceOnce(base, "kind: NET_RESULT", "kind: DELTA"),
		"treasury clash":      replaceOnce(base, `treasuryPrefixes: ["5"]`, `treasuryPrefixes: ["1"]`),
		"no standard":         replaceOnce(base, "standard: TEST", "standard: ''"),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, base, raw, "fixture did not change")
			_, err := statements.ParseDefinition([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DuplicateStandard(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(definition("TEST"))},
		"b.yaml": {Data: []byte(definition("test"))},
	}
	_, err := statements.Load(fsys)
	assert.ErrorContains(t, err, "defined twice")

	_, err = statements.Load(fstest.MapFS{})
	assert.Error(t, err)
}

func replaceOnce(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
