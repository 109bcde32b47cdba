// Package hydration holds the water tracker's core rules: the daily target
// formula and the day ledger of intake records with its dosage policy and
// entry-dialog state machine. Nothing here touches storage or transport;
// callers pass records in and persist the returned mutations.
package hydration

import "errors"

var (
	// ErrInvalidNumericInput is returned by the strict parsers when text is
	// not a finite number. Form-level helpers recover from it by coercion.
	ErrInvalidNumericInput = errors.New("invalid numeric input")

	// ErrRecordNotFound marks an edit, delete or lookup for an id that is not
	// in the ledger. Callers render it as an "unavailable" state.
	ErrRecordNotFound = errors.New("intake record not found")

	// ErrInvalidTime is returned when a record time is not a valid 24h clock.
	ErrInvalidTime = errors.New("time must be HH:MM (24h)")

	// ErrMalformedRecord is a caller bug: an edit without an id or an unknown
	// upsert mode.
	ErrMalformedRecord = errors.New("malformed intake record")

	// ErrInvalidTransition is returned when an entry dialog is driven from a
	// state that does not accept the action, e.g. editing after it closed.
	ErrInvalidTransition = errors.New("invalid dialog transition")
)
