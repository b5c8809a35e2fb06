package ledger

import (
	"fmt"
	"regexp"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// NumberingRules describe which account codes a standard accepts.
type NumberingRules struct {
	Standard  domain.AccountingStandard
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
}

// NewNumberingRules compiles pattern. A zero length bound is not enforced.
func NewNumberingRules(standard domain.AccountingStandard, pattern string, minLength, maxLength int) (NumberingRules, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return NumberingRules{}, fmt.Errorf("numbering pattern for %s: %w", standard, err)
	}
	if maxLength > 0 && minLength > maxLength {
		return NumberingRules{}, fmt.Errorf("numbering rules for %s: min length %d above max length %d", standard, minLength, maxLength)
	}
	return NumberingRules{Standard: standard, Pattern: re, MinLength: minLength, MaxLength: maxLength}, nil
}

// Accepts reports whether code is a syntactically valid account code under these rules.
func (r NumberingRules) Accepts(code string) bool {
	if code == "" {
		return false
	}
	if r.MinLength > 0 && len(code) < r.MinLength {
		return false
	}
	if r.MaxLength > 0 && len(code) > r.MaxLength {
		return false
	}
	if r.Pattern != nil && !r.Pattern.MatchString(code) {
		return false
	}
	return true
}

// RulesProvider resolves the numbering rules of a standard.
// The statements registry is the production implementation.
type RulesProvider interface {
	NumberingRules(standard domain.AccountingStandard) (NumberingRules, bool)
}

// StaticRules is a RulesProvider over a fixed map, handy for tests and tools.
type StaticRules map[domain.AccountingStandard]NumberingRules

func (s StaticRules) NumberingRules(standard domain.AccountingStandard) (NumberingRules, bool) {
	r, ok := s[standard]
	return r, ok
}

// Chart tells whether an account exists in a company's chart of accounts.
type Chart interface {
	Has(code string) bool
}

// ChartSet is a Chart backed by a set of codes.
type ChartSet map[string]struct{}

// NewChartSet builds a ChartSet from account codes.
func NewChartSet(codes ...string) ChartSet {
	s := make(ChartSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s ChartSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}
