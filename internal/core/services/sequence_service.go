package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

const (
	entryNumberFormat = "JE-%s-%04d"
	thirdPartyDigits  = 4
	// maxThirdPartySeq is the largest counter that fits the sub-account suffix.
	maxThirdPartySeq = 9999
)

type sequenceService struct {
	BaseService
	repo portsrepo.SequenceRepository
}

// NewSequenceService creates the number allocation service.
func NewSequenceService(repo portsrepo.SequenceRepository) portssvc.SequenceSvc {
	return &sequenceService{BaseService: newBaseService("sequence"), repo: repo}
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

// entrySequenceKey is per day so numbers restart at 0001 every day.
func entrySequenceKey(date time.Time) string {
	return "JE-" + date.Format("20060102")
}

func thirdPartySequenceKey(prefix string) string {
	return "TP-" + prefix
}

// NextEntryNumber returns JE-YYYYMMDD-NNNN.
func (s *sequenceService) NextEntryNumber(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) (string, error) {
	n, err := s.repo.NextValue(ctx, tx, companyID, entrySequenceKey(date))
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate entry number", slog.String("company_id", companyID))
		return "", fmt.Errorf("failed to allocate entry number: %w", err)
	}
	return fmt.Sprintf(entryNumberFormat, date.Format("20060102"), n), nil
}

// NextThirdPartyAccount returns 411NNNN for customers and 401NNNN for suppliers.
func (s *sequenceService) NextThirdPartyAccount(ctx context.Context, companyID string, kind domain.ThirdPartyKind) (string, error) {
	prefix, ok := kind.CollectivePrefix()
	if !ok {
		return "", fmt.Errorf("unknown third-party kind %q: %w", kind, apperrors.ErrValidation)
	}
	n, err := s.repo.NextValue(ctx, nil, companyID, thirdPartySequenceKey(prefix))
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate third-party account", slog.String("company_id", companyID))
		return "", fmt.Errorf("failed to allocate third-party account: %w", err)
	}
	if n > maxThirdPartySeq {
		return "", fmt.Errorf("third-party numbering for %s exhausted: %w", prefix, apperrors.ErrConflict)
	}
	return fmt.Sprintf("%s%0*d", prefix, thirdPartyDigits, n), nil
}
