// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

// IntakesStats returns the number of live records in a user's day bucket
// and the greatest UpdatedAt among them. When the bucket is empty the count
// is 0 and maxUpdatedAt is nil.
//
// Soft-deleted rows are excluded, so a delete changes the count.
func IntakesStats(ctx context.Context, db *gorm.DB, userID string, key domain.DayKey) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).
		Model(&domain.IntakeRecord{}).
		Where("user_id = ? AND year = ? AND month = ? AND day = ?", userID, key.Year, key.Month, key.Day)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
