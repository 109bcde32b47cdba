// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// IntakeRecord model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They persist what the hydration ledger
// decided and hold no business rules of their own: ids, insertion order,
// clamping and time normalization are done before a record reaches here.
//
// Error semantics:
//   - When a record is not found (or is owned by another user), functions
//     return ErrNotFound.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateIntake inserts rec as built by the ledger.
func CreateIntake(ctx context.Context, db *gorm.DB, rec *domain.IntakeRecord) error {
	return db.WithContext(ctx).Create(rec).Error
}

// ListIntakesForDay returns the live records of userID in the given bucket,
// in insertion order.
func ListIntakesForDay(ctx context.Context, db *gorm.DB, userID string, key domain.DayKey) ([]domain.IntakeRecord, error) {
	out := []domain.IntakeRecord{}
	err := db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ? AND day = ?", userID, key.Year, key.Month, key.Day).
		Order("seq ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

// GetIntake fetches a single record by id and owner.
func GetIntake(ctx context.Context, db *gorm.DB, id, userID string) (*domain.IntakeRecord, error) {
	var rec domain.IntakeRecord
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateIntake writes the editable fields of rec (dosage and time). The
// date bucket and insertion position are never touched. Returns ErrNotFound
// when no row matched.
func UpdateIntake(ctx context.Context, db *gorm.DB, rec domain.IntakeRecord) error {
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	res := db.WithContext(ctx).
		Model(&domain.IntakeRecord{}).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Updates(map[string]any{
			"dosage":     rec.Dosage,
			"time":       rec.Time,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIntake soft-deletes the record. Returns ErrNotFound when no live row
// matched.
func DeleteIntake(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.IntakeRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
