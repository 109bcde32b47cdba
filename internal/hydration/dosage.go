package hydration

import "github.com/GoitStudentsWorks/water-tracker/internal/domain"

// Dosage limits in milliliters and the stepper increment.
const (
	MinDosage  = domain.MinDosage
	MaxDosage  = domain.MaxDosage
	DosageStep = 50
)

// FloorPolicy decides what a non-positive dosage becomes. The two entry
// paths disagree on purpose and each names its policy explicitly.
type FloorPolicy int

const (
	// FloorStepper is used by the decrement control and when a dosage is
	// persisted: non-positive values become 0.
	FloorStepper FloorPolicy = iota
	// FloorDirectInput is used when the user types into the numeric field:
	// non-positive values become 1, matching the field's min attribute.
	FloorDirectInput
)

func (p FloorPolicy) floor() int {
	if p == FloorDirectInput {
		return 1
	}
	return MinDosage
}

// ClampDosage bounds v to [floor, MaxDosage] where floor depends on p.
// It is idempotent for either policy.
func ClampDosage(v int, p FloorPolicy) int {
	switch {
	case v <= 0:
		return p.floor()
	case v >= MaxDosage:
		return MaxDosage
	}
	return v
}

// NormalizeDosage is the clamp applied before a dosage is stored or shown.
func NormalizeDosage(v int) int { return ClampDosage(v, FloorStepper) }

// IncrementDosage adds one step. It does not clamp; the max bound is applied
// when the value is displayed or persisted.
func IncrementDosage(current int) int { return current + DosageStep }

// DecrementDosage removes one step, bottoming out at 0.
func DecrementDosage(current int) int {
	if next := current - DosageStep; next > 0 {
		return next
	}
	return 0
}

// DefaultDosageForNewEntry seeds the new-entry form with the dosage of the
// most recently added record, or 0 for an empty day.
func DefaultDosageForNewEntry(records []domain.IntakeRecord) int {
	if len(records) == 0 {
		return 0
	}
	return records[len(records)-1].Dosage
}

// TotalDosage sums the dosages of records.
func TotalDosage(records []domain.IntakeRecord) int {
	total := 0
	for _, r := range records {
		total += r.Dosage
	}
	return total
}
