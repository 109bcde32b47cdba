package hydration

import (
	"testing"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
)

func TestClampDosage_Policies(t *testing.T) {
	cases := []struct {
		in      int
		direct  int
		stepper int
	}{
		{-500, 1, 0},
		{-1, 1, 0},
		{0, 1, 0},
		{1, 1, 1},
		{250, 250, 250},
		{2999, 2999, 2999},
		{3000, 3000, 3000},
		{3001, 3000, 3000},
		{1 << 20, 3000, 3000},
	}
	for _, tc := range cases {
		if got := ClampDosage(tc.in, FloorDirectInput); got != tc.direct {
			t.Errorf("ClampDosage(%d, direct) = %d; want %d", tc.in, got, tc.direct)
		}
		if got := ClampDosage(tc.in, FloorStepper); got != tc.stepper {
			t.Errorf("ClampDosage(%d, stepper) = %d; want %d", tc.in, got, tc.stepper)
		}
	}
}

func TestClampDosage_IdempotentAndBounded(t *testing.T) {
	for _, p := range []FloorPolicy{FloorDirectInput, FloorStepper} {
		for x := -5000; x <= 5000; x += 7 {
			once := ClampDosage(x, p)
			if once < MinDosage || once > MaxDosage {
				t.Fatalf("ClampDosage(%d, %d) = %d out of bounds", x, p, once)
			}
			if twice := ClampDosage(once, p); twice != once {
				t.Fatalf("ClampDosage not idempotent at %d: %d then %d", x, once, twice)
			}
		}
	}
}

func TestIncrementDecrement(t *testing.T) {
	if got := DecrementDosage(30); got != 0 {
		t.Fatalf("DecrementDosage(30) = %d; want 0", got)
	}
	if got := DecrementDosage(100); got != 50 {
		t.Fatalf("DecrementDosage(100) = %d; want 50", got)
	}
	if got := DecrementDosage(50); got != 0 {
		t.Fatalf("DecrementDosage(50) = %d; want 0", got)
	}
	if got := IncrementDosage(2980); got != 3030 {
		t.Fatalf("IncrementDosage should not clamp, got %d", got)
	}
	if got := NormalizeDosage(IncrementDosage(2980)); got != MaxDosage {
		t.Fatalf("persisted increment should clamp to %d, got %d", MaxDosage, got)
	}

	// Round trip holds for positive values below the re-clamp threshold.
	for x := 1; x+DosageStep < MaxDosage; x += 13 {
		if got := DecrementDosage(IncrementDosage(x)); got != x {
			t.Fatalf("decrement(increment(%d)) = %d", x, got)
		}
	}
}

func TestDefaultDosageForNewEntry(t *testing.T) {
	if got := DefaultDosageForNewEntry(nil); got != 0 {
		t.Fatalf("empty ledger default = %d; want 0", got)
	}
	recs := []domain.IntakeRecord{
		{ID: "a", Dosage: 400, Time: "23:00"},
		{ID: "b", Dosage: 250, Time: "07:00"}, // added last, earlier clock time
	}
	if got := DefaultDosageForNewEntry(recs); got != 250 {
		t.Fatalf("default = %d; want 250 (last added, not latest time)", got)
	}
	if got := TotalDosage(recs); got != 650 {
		t.Fatalf("TotalDosage = %d; want 650", got)
	}
}
