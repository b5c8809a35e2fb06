package services

import "github.com/SscSPs/ecompta_backend/internal/core/statements"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Company   CompanySvcFacade
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Sequence  SequenceSvc
	Reporting ReportingService

	// Standards is the immutable registry of statement definitions and numbering rules.
	Standards *statements.Registry
}
