// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These codes give clients a stable, machine-readable error taxonomy next to
// the human-readable message. Codes are lowercase snake_case; the generic
// ones mirror HTTP status semantics, the domain ones name the water tracker
// failure that a status alone cannot convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "invalid_time",
//	  "message": "time must be HH:MM (24h)"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeRecordNotFound = "record_not_found"
	ErrCodeInvalidTime    = "invalid_time"
	ErrCodeInvalidDate    = "invalid_date"
	ErrCodeInvalidGender  = "invalid_gender"
	ErrCodeListFailed     = "list_failed"
	ErrCodeSaveFailed     = "save_failed"
)
