// Package domain defines the persistence models for water intake records
// and user hydration profiles. These types are mapped with GORM and form the
// core data layer of the water tracker.
package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Dosage bounds, in milliliters, for a single intake record.
const (
	MinDosage = 0
	MaxDosage = 3000
)

// IntakeRecord is one logged drink of water. Records are grouped into day
// buckets (Day, Month, Year) fixed at creation; edits only touch Dosage and
// Time.
//
// Fields:
//   - ID: UUID primary key (char(36)), never reused.
//   - UserID: owner of the record.
//   - Seq: insertion position inside the day bucket; list order follows it.
//   - Dosage: volume in milliliters, always within [MinDosage, MaxDosage].
//   - Time: wall-clock "HH:MM" (24h), editable independently of Seq.
//   - Day / Month / Year: calendar bucket; Month is the English month name.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type IntakeRecord struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"-"          gorm:"type:varchar(64);not null;index:idx_user_day,priority:1"`
	Seq       int64          `json:"-"          gorm:"not null;index:idx_user_day,priority:5"`
	Dosage    int            `json:"dosage"     gorm:"not null;check:dosage BETWEEN 0 AND 3000"`
	Time      string         `json:"time"       gorm:"type:char(5);not null"`
	Day       int            `json:"day"        gorm:"not null;index:idx_user_day,priority:4"`
	Month     string         `json:"month"      gorm:"type:varchar(16);not null;index:idx_user_day,priority:3"`
	Year      int            `json:"year"       gorm:"not null;index:idx_user_day,priority:2"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for IntakeRecord.
func (IntakeRecord) TableName() string { return "intake_records" }

// DayKey returns the bucket the record belongs to.
func (r IntakeRecord) DayKey() DayKey {
	return DayKey{Day: r.Day, Month: r.Month, Year: r.Year}
}

// DayKey identifies a day bucket. Month uses English month names so the
// stored rows read the same way the client renders them.
type DayKey struct {
	Day   int    `json:"day"`
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// DayKeyOf returns the bucket for t in t's location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey{Day: t.Day(), Month: t.Month().String(), Year: t.Year()}
}

// UserProfile holds the biometric inputs for the daily target together with
// the amount the user has committed to drink.
//
// Fields:
//   - UserID: primary key; one profile per user.
//   - Name: username or e-mail, used for the display name.
//   - Gender: "female" or "male".
//   - WeightKilograms / ActivityMinutes: calculator inputs, never negative.
//   - DailyNormaLiters: planned daily amount; zero means "use the target".
type UserProfile struct {
	UserID           string    `json:"-"                  gorm:"type:varchar(64);primaryKey"`
	Name             string    `json:"name"               gorm:"type:varchar(255)"`
	Gender           string    `json:"gender"             gorm:"type:varchar(8);not null;default:'female';check:gender IN ('female','male')"`
	WeightKilograms  float64   `json:"weight_kg"          gorm:"not null;default:0"`
	ActivityMinutes  float64   `json:"activity_minutes"   gorm:"not null;default:0"`
	DailyNormaLiters float64   `json:"daily_norma_liters" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for UserProfile.
func (UserProfile) TableName() string { return "user_profiles" }

// DisplayName returns the part of Name shown next to the avatar: the local
// part when Name is an e-mail address, Name itself otherwise.
func (p UserProfile) DisplayName() string {
	if i := strings.Index(p.Name, "@"); i >= 0 {
		return p.Name[:i]
	}
	return p.Name
}

// Initial returns the upper-cased first letter of Name, or "" when empty.
func (p UserProfile) Initial() string {
	r, _ := utf8.DecodeRuneInString(p.Name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
