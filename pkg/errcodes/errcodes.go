package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Scoring pipeline codes. ModelUnknown is an out-of-catalog listing,
	// PricingMissing is a configuration gap; logs must tell them apart.
	ModelUnknown   failure.ErrorCode = "ModelUnknown"
	PricingMissing failure.ErrorCode = "PricingMissing"

	// Ledger codes. A duplicate fingerprint is not an error and has no code
	// here: TryAdmit reports it as a plain negative result. StorageFailure is
	// the only hard failure of the ledger.
	StorageFailure     failure.ErrorCode = "StorageFailure"
	LedgerEntryMissing failure.ErrorCode = "LedgerEntryMissing"

	InvalidListing  failure.ErrorCode = "InvalidListing"
	InvalidCatalog  failure.ErrorCode = "InvalidCatalog"
	InvalidBudget   failure.ErrorCode = "InvalidBudget"
	AnalyzerFailure failure.ErrorCode = "AnalyzerFailure"
	SourceFailure   failure.ErrorCode = "SourceFailure"
)
