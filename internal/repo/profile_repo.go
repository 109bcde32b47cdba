package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

// GetProfile returns the profile for userID or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile creates the profile or overwrites every editable field of an
// existing one. A map is assigned so zero values (0 kg, 0 minutes) are
// written too.
// On return p holds the stored row.
func UpsertProfile(ctx context.Context, db *gorm.DB, p *domain.UserProfile) error {
	want := *p
	err := db.WithContext(ctx).
		Where(domain.UserProfile{UserID: p.UserID}).
		Assign(map[string]any{
			"name":               want.Name,
			"gender":             want.Gender,
			"weight_kilograms":   want.WeightKilograms,
			"activity_minutes":   want.ActivityMinutes,
			"daily_norma_liters": want.DailyNormaLiters,
		}).
		FirstOrCreate(p).Error
	if err != nil {
		return err
	}
	p.Name = want.Name
	p.Gender = want.Gender
	p.WeightKilograms = want.WeightKilograms
	p.ActivityMinutes = want.ActivityMinutes
	p.DailyNormaLiters = want.DailyNormaLiters
	return nil
}
