package services

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SequenceSvc allocates entry numbers and third-party account codes.
type SequenceSvc interface {
	// NextEntryNumber returns JE-YYYYMMDD-NNNN from the company's counter for that day.
	// tx may be nil to allocate outside a transaction.
	NextEntryNumber(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (string, error)

	// NextThirdPartyAccount returns the next 411NNNN or 401NNNN code.
	NextThirdPartyAccount(ctx context.Context, companyID string, kind domain.ThirdPartyKind) (string, error)
}
