// Package handlers defines the HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case and stable: clients branch on
// them for programmatic error handling while the message stays free-form.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidation   = "validation_failed"
	ErrCodeExportFailed = "export_failed"
	ErrCodeAnalysisBusy = "analysis_in_progress"
)
