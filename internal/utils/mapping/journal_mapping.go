package mapping

import (
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		CompanyID:    d.CompanyID,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		Standard:     string(d.Standard),
		Status:       string(d.Status),
		ValidatedAt:  d.ValidatedAt,
		ValidatedBy:  d.ValidatedBy,
		PostedAt:     d.PostedAt,
		PostedBy:     d.PostedBy,
		CancelledAt:  d.CancelledAt,
		CancelledBy:  d.CancelledBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without postings
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		CompanyID:    m.CompanyID,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		Standard:     domain.AccountingStandard(m.Standard),
		Status:       domain.JournalStatus(m.Status),
		ValidatedAt:  m.ValidatedAt,
		ValidatedBy:  m.ValidatedBy,
		PostedAt:     m.PostedAt,
		PostedBy:     m.PostedBy,
		CancelledAt:  m.CancelledAt,
		CancelledBy:  m.CancelledBy,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPostings converts the postings of an entry, stamping the entry ID
func ToModelPostings(entryID string, ds []domain.Posting) []models.Posting {
	ms := make([]models.Posting, len(ds))
	for i, d := range ds {
		ms[i] = models.Posting{
			EntryID:     entryID,
			LineNumber:  d.LineNumber,
			AccountCode: d.AccountCode,
			Direction:   string(d.Direction),
			Amount:      d.Amount,
			Description: d.Description,
		}
	}
	return ms
}

// ToDomainPosting converts a model Posting to a domain Posting
func ToDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		LineNumber:  m.LineNumber,
		AccountCode: m.AccountCode,
		Direction:   domain.Direction(m.Direction),
		Amount:      m.Amount,
		Description: m.Description,
	}
}

// ToDomainPostings converts a slice of model Postings
func ToDomainPostings(ms []models.Posting) []domain.Posting {
	ds := make([]domain.Posting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPosting(m)
	}
	return ds
}
