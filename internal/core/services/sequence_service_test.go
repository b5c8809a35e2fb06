package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSequenceService_EntryNumber(t *testing.T) {
	repo := new(MockSequenceRepository)
	repo.On("NextValue", mock.Anything, mock.Anything, "c-1", "JE-20240105").Return(int64(42), nil).Once()
	svc := services.NewSequenceService(repo)

	n, err := svc.NextEntryNumber(context.Background(), nil, "c-1", time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "JE-20240105-0042", n)
}

func TestSequenceService_ThirdPartyAccounts(t *testing.T) {
	repo := new(MockSequenceRepository)
	repo.On("NextValue", mock.Anything, mock.Anything, "c-1", "TP-401").Return(int64(1), nil).Once()
	repo.On("NextValue", mock.Anything, mock.Anything, "c-1", "TP-411").Return(int64(10000), nil).Once()
	svc := services.NewSequenceService(repo)
	ctx := context.Background()

	code, err := svc.NextThirdPartyAccount(ctx, "c-1", domain.ThirdPartySupplier)
	require.NoError(t, err)
	assert.Equal(t, "4010001", code)

	_, err = svc.NextThirdPartyAccount(ctx, "c-1", domain.ThirdPartyCustomer)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "suffix space exhausted")

	_, err = svc.NextThirdPartyAccount(ctx, "c-1", domain.ThirdPartyKind("EMPLOYEE"))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestSequenceService_RepositoryError(t *testing.T) {
	repo := new(MockSequenceRepository)
	repo.On("NextValue", mock.Anything, mock.Anything, "c-1", mock.Anything).Return(int64(0), apperrors.NewAppError(500, "boom", nil)).Once()

	_, err := services.NewSequenceService(repo).NextEntryNumber(context.Background(), nil, "c-1", time.Now())

	assert.True(t, errors.Is(err, apperrors.ErrInternal))
}
