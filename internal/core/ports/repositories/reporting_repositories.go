package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalance aggregates POSTED postings per account up to asOf (inclusive).
	// When from is set only entries dated on or after it are included.
	GetTrialBalance(ctx context.Context, companyID string, asOf time.Time, from *time.Time) ([]domain.TrialBalanceLine, error)
}
