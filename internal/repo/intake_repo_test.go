package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

func TestCreateIntake_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	rec := &domain.IntakeRecord{ID: "x", UserID: "u1", Dosage: 100, Time: "09:00", Day: 1, Month: "May", Year: 2024}
	if err := CreateIntake(context.Background(), db, rec); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCreateIntake_RejectsOutOfRangeDosage(t *testing.T) {
	db := newTestDB(t, &domain.IntakeRecord{})
	rec := &domain.IntakeRecord{ID: "x", UserID: "u1", Dosage: 3500, Time: "09:00", Day: 1, Month: "May", Year: 2024}
	if err := CreateIntake(context.Background(), db, rec); err == nil {
		t.Fatalf("expected check constraint violation for dosage 3500")
	}
}

func TestListIntakesForDay_InsertionOrderAndFilter(t *testing.T) {
	db := newTestDB(t, &domain.IntakeRecord{})
	ctx := context.Background()
	base := time.Date(2024, 5, 14, 6, 0, 0, 0, time.UTC)

	// Seeded out of seq order; the later seq has the earlier wall-clock time.
	seedIntake(t, db, "third", "u1", 3, may14, base.Add(3*time.Minute))
	seedIntake(t, db, "first", "u1", 1, may14, base.Add(1*time.Minute))
	seedIntake(t, db, "second", "u1", 2, may14, base.Add(2*time.Minute))
	seedIntake(t, db, "foreign", "u2", 1, may14, base)
	seedIntake(t, db, "tomorrow", "u1", 1, domain.DayKey{Day: 15, Month: "May", Year: 2024}, base)

	got, err := ListIntakesForDay(ctx, db, "u1", may14)
	if err != nil {
		t.Fatalf("ListIntakesForDay: %v", err)
	}
	if len(got) != 3 || got[0].ID != "first" || got[1].ID != "second" || got[2].ID != "third" {
		t.Fatalf("unexpected order: %+v", got)
	}

	empty, err := ListIntakesForDay(ctx, db, "nobody", may14)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty bucket should be a non-nil empty slice, got %v, %v", empty, err)
	}
}

func TestGetIntake_OwnershipAndNotFound(t *testing.T) {
	db := newTestDB(t, &domain.IntakeRecord{})
	ctx := context.Background()
	seedIntake(t, db, "r1", "u1", 1, may14, time.Now().UTC())

	got, err := GetIntake(ctx, db, "r1", "u1")
	if err != nil || got.Dosage != 200 || got.Month != "May" {
		t.Fatalf("GetIntake: %+v, %v", got, err)
	}
	if _, err := GetIntake(ctx, db, "r1", "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign owner err = %v; want ErrNotFound", err)
	}
	if _, err := GetIntake(ctx, db, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v; want ErrNotFound", err)
	}
}

func TestUpdateIntake_OnlyEditableFields(t *testing.T) {
	db := newTestDB(t, &domain.IntakeRecord{})
	ctx := context.Background()
	created := time.Date(2024, 5, 14, 6, 0, 0, 0, time.UTC)
	seedIntake(t, db, "r1", "u1", 4, may14, created)

	edited := domain.IntakeRecord{
		ID: "r1", UserID: "u1", Dosage: 650, Time: "21:05",
		// Bucket fields here must be ignored.
		Day: 1, Month: "January", Year: 1999, Seq: 99,
		UpdatedAt: created.Add(time.Hour),
	}
	if err := UpdateIntake(ctx, db, edited); err != nil {
		t.Fatalf("UpdateIntake: %v", err)
	}
	got, err := GetIntake(ctx, db, "r1", "u1")
	if err != nil {
		t.Fatalf("GetIntake: %v", err)
	}
	if got.Dosage != 650 || got.Time != "21:05" {
		t.Fatalf("editable fields not written: %+v", got)
	}
	if got.DayKey() != may14 || got.Seq != 4 {
		t.Fatalf("bucket/seq changed: %+v", got)
	}

	edited.UserID = "u2"
	if err := UpdateIntake(ctx, db, edited); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign update err = %v; want ErrNotFound", err)
	}
}

func TestDeleteIntake_SoftDeleteAndMiss(t *testing.T) {
	db := newTestDB(t, &domain.IntakeRecord{})
	ctx := context.Background()
	seedIntake(t, db, "r1", "u1", 1, may14, time.Now().UTC())

	if err := DeleteIntake(ctx, db, "r1", "u1"); err != nil {
		t.Fatalf("DeleteIntake: %v", err)
	}
	if _, err := GetIntake(ctx, db, "r1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted record should be hidden, err = %v", err)
	}
	var raw int64
	if err := db.Unscoped().Model(&domain.IntakeRecord{}).Where("id = ?", "r1").Count(&raw).Error; err != nil || raw != 1 {
		t.Fatalf("row should remain soft-deleted, count=%d err=%v", raw, err)
	}
	if err := DeleteIntake(ctx, db, "r1", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v; want ErrNotFound", err)
	}
}
