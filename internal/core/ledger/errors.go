package ledger

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// StructuralError reports a malformed entry.
type StructuralError struct {
	Issues []Issue
}

func (e *StructuralError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.PostingIndex == HeaderIndex {
			msgs = append(msgs, is.Message)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("posting %d: %s", is.PostingIndex, is.Message))
	}
	return "structural error: " + strings.Join(msgs, "; ")
}

func (e *StructuralError) Unwrap() error { return apperrors.ErrValidation }

// ImbalanceError reports debits and credits that do not match.
type ImbalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("entry is not balanced: debit %s, credit %s, difference %s",
		e.TotalDebit.String(), e.TotalCredit.String(), e.Difference.String())
}

func (e *ImbalanceError) Unwrap() error { return apperrors.ErrValidation }
