package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.JournalStatus
		allowed  bool
	}{
		{domain.Draft, domain.Validated, true},
		{domain.Draft, domain.Cancelled, true},
		{domain.Draft, domain.Posted, false},
		{domain.Validated, domain.Posted, true},
		{domain.Validated, domain.Cancelled, true},
		{domain.Validated, domain.Draft, false},
		{domain.Posted, domain.Cancelled, false},
		{domain.Posted, domain.Draft, false},
		{domain.Cancelled, domain.Draft, false},
		{domain.Cancelled, domain.Validated, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, domain.CanTransition(tt.from, tt.to))
		})
	}
}

func TestJournalEntry_TransitionTo(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := &domain.JournalEntry{Status: domain.Draft}

	require.NoError(t, entry.TransitionTo(domain.Validated, "alice", at))
	assert.Equal(t, domain.Validated, entry.Status)
	require.NotNil(t, entry.ValidatedAt)
	assert.Equal(t, at, *entry.ValidatedAt)
	assert.Equal(t, "alice", *entry.ValidatedBy)
	assert.False(t, entry.IsEditable())

	require.NoError(t, entry.TransitionTo(domain.Posted, "bob", at.Add(time.Hour)))
	assert.Equal(t, "bob", *entry.PostedBy)
	assert.Equal(t, "bob", entry.LastUpdatedBy)

	err := entry.TransitionTo(domain.Cancelled, "bob", at)
	var transitionErr *domain.ErrInvalidTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, domain.Posted, transitionErr.From)
	assert.Equal(t, domain.Cancelled, transitionErr.To)
	assert.Nil(t, entry.CancelledAt)
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{Postings: []domain.Posting{
		{AccountCode: "601", Direction: domain.Debit, Amount: decimal.RequireFromString("100")},
		{AccountCode: "4456", Direction: domain.Debit, Amount: decimal.RequireFromString("18")},
		{AccountCode: "401", Direction: domain.Credit, Amount: decimal.RequireFromString("118")},
	}}
	debit, credit := entry.Totals()
	assert.True(t, debit.Equal(decimal.NewFromInt(118)))
	assert.True(t, credit.Equal(decimal.NewFromInt(118)))
}
