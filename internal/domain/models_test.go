package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (IntakeRecord{}).TableName() != "intake_records" {
		t.Fatalf("IntakeRecord.TableName() = %q", (IntakeRecord{}).TableName())
	}
	if (UserProfile{}).TableName() != "user_profiles" {
		t.Fatalf("UserProfile.TableName() = %q", (UserProfile{}).TableName())
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q", (Idempotency{}).TableName())
	}
}

func TestMigrations_IndexesAndChecks(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&IntakeRecord{}, &UserProfile{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasIndex(&IntakeRecord{}, "idx_user_day") {
		t.Fatalf("expected index idx_user_day on intake_records")
	}
	if !m.HasIndex(&Idempotency{}, "ux_user_scope_key") {
		t.Fatalf("expected unique index ux_user_scope_key on idempotency")
	}

	now := time.Now().UTC()
	ok := &IntakeRecord{ID: "r1", UserID: "u1", Seq: 1, Dosage: 3000, Time: "09:05", Day: 1, Month: "May", Year: 2024, CreatedAt: now}
	if err := db.Create(ok).Error; err != nil {
		t.Fatalf("insert in-range record: %v", err)
	}

	// The CHECK constraint backs up the service-level clamp.
	bad := &IntakeRecord{ID: "r2", UserID: "u1", Seq: 2, Dosage: 3001, Time: "09:05", Day: 1, Month: "May", Year: 2024, CreatedAt: now}
	if err := db.Create(bad).Error; err == nil {
		t.Fatalf("expected CHECK violation for dosage 3001")
	}

	p := &UserProfile{UserID: "u1", Gender: "robot"}
	if err := db.Create(p).Error; err == nil {
		t.Fatalf("expected CHECK violation for gender %q", p.Gender)
	}
}

func TestIdempotency_UniquePerUserScopeKey(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	now := time.Now().UTC()
	first := &Idempotency{ID: "i1", UserID: "u1", Scope: "/water", Key: "k1", RecordID: "r1", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	dup := &Idempotency{ID: "i2", UserID: "u1", Scope: "/water", Key: "k1", RecordID: "r2", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (user_id, scope, key)")
	}

	// Same key under another scope is a different operation.
	other := &Idempotency{ID: "i3", UserID: "u1", Scope: "/norma", Key: "k1", RecordID: "r3", Status: 200, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("insert other scope: %v", err)
	}
}

func TestDayKeyOf(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	// 22:30 UTC on Dec 31 is already Jan 1 in UTC+3.
	ts := time.Date(2023, time.December, 31, 22, 30, 0, 0, time.UTC).In(loc)
	got := DayKeyOf(ts)
	want := DayKey{Day: 1, Month: "January", Year: 2024}
	if got != want {
		t.Fatalf("DayKeyOf = %+v; want %+v", got, want)
	}

	r := IntakeRecord{Day: 1, Month: "January", Year: 2024}
	if r.DayKey() != want {
		t.Fatalf("record DayKey = %+v; want %+v", r.DayKey(), want)
	}
}

func TestUserProfile_DisplayNameAndInitial(t *testing.T) {
	cases := []struct {
		name        string
		wantDisplay string
		wantInitial string
	}{
		{"olena@example.com", "olena", "O"},
		{"ivan", "ivan", "I"},
		{"", "", ""},
		{"яна", "яна", "Я"},
	}
	for _, tc := range cases {
		p := UserProfile{Name: tc.name}
		if got := p.DisplayName(); got != tc.wantDisplay {
			t.Errorf("DisplayName(%q) = %q; want %q", tc.name, got, tc.wantDisplay)
		}
		if got := p.Initial(); got != tc.wantInitial {
			t.Errorf("Initial(%q) = %q; want %q", tc.name, got, tc.wantInitial)
		}
	}
}
