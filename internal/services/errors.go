// Package services defines the business logic for the water tracker: the
// day ledger of intake records and the daily norma profile.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
)

// Intake-related errors. The ledger's sentinels are re-exported so handlers
// depend on one package.
var (
	// ErrRecordNotFound indicates that the intake record does not exist, was
	// removed, or belongs to another user.
	ErrRecordNotFound = hydration.ErrRecordNotFound

	// ErrInvalidTime is returned when a record time is not a 24h HH:MM clock.
	ErrInvalidTime = hydration.ErrInvalidTime

	// ErrMalformedRecord is returned for an edit without an id.
	ErrMalformedRecord = hydration.ErrMalformedRecord

	// ErrInvalidTransition is returned when an entry dialog is driven from a
	// closed state.
	ErrInvalidTransition = hydration.ErrInvalidTransition

	// ErrInvalidDate is returned when a requested day is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// Norma-related errors.
var (
	// ErrInvalidGender is returned when gender is neither female nor male.
	ErrInvalidGender = errors.New("gender must be female or male")
)
