package hydration

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Gender selects the coefficient pair used by the target formula.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParseGender accepts the canonical values plus the labels the signup and
// daily-norma forms send ("forGirl", "forMan", "woman", ...). Matching is
// case-insensitive.
func ParseGender(s string) (Gender, bool) {
	// A Caser carries state, so each call gets its own.
	switch cases.Fold().String(strings.TrimSpace(s)) {
	case "female", "f", "woman", "girl", "forgirl":
		return GenderFemale, true
	case "male", "m", "man", "boy", "forman":
		return GenderMale, true
	default:
		return "", false
	}
}

// Coefficients per gender: liters per kilogram of body weight and liters per
// unit of activity time.
var (
	femaleWeightCoef = decimal.RequireFromString("0.03")
	femaleTimeCoef   = decimal.RequireFromString("0.4")
	maleWeightCoef   = decimal.RequireFromString("0.04")
	maleTimeCoef     = decimal.RequireFromString("0.6")
)

func coefficients(g Gender) (weight, activity decimal.Decimal) {
	if g == GenderFemale {
		return femaleWeightCoef, femaleTimeCoef
	}
	return maleWeightCoef, maleTimeCoef
}

// Volume is a daily target in liters with two decimal places, or the Invalid
// sentinel. The zero value is Invalid.
type Volume struct {
	liters decimal.Decimal
	valid  bool
}

// Invalid is the result of computing a target from non-numeric input.
var Invalid = Volume{}

// Valid reports whether v holds a computed number.
func (v Volume) Valid() bool { return v.valid }

// Liters returns the rounded amount; zero for Invalid.
func (v Volume) Liters() decimal.Decimal {
	if !v.valid {
		return decimal.Zero
	}
	return v.liters
}

// Float64 returns the rounded amount as a float; zero for Invalid.
func (v Volume) Float64() float64 {
	f, _ := v.Liters().Float64()
	return f
}

// maxMilliliters bounds Milliliters so huge targets saturate instead of
// wrapping.
var maxMilliliters = decimal.NewFromInt(math.MaxInt32)

// Milliliters returns the amount in whole milliliters, saturating at
// ±math.MaxInt32; zero for Invalid.
func (v Volume) Milliliters() int {
	ml := v.Liters().Shift(3)
	switch {
	case ml.GreaterThan(maxMilliliters):
		return math.MaxInt32
	case ml.LessThan(maxMilliliters.Neg()):
		return -math.MaxInt32
	}
	return int(ml.IntPart())
}

// Fixed renders the number with exactly two decimals ("13.80"), or "" for
// Invalid.
func (v Volume) Fixed() string {
	if !v.valid {
		return ""
	}
	return v.liters.StringFixed(2)
}

// String renders the value for display: "13.80 L", or "invalid".
func (v Volume) String() string {
	if !v.valid {
		return "invalid"
	}
	return v.Fixed() + " L"
}

// MarshalJSON encodes the value as a fixed two-decimal string, or null for
// Invalid, so clients never see NaN.
func (v Volume) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Fixed())
}

// ComputeTarget returns round2(weight*weightCoef + activity*timeCoef).
//
// Rounding is decimal half-away-from-zero on the exact decimal value of the
// inputs, which is half-up for the non-negative inputs the form layer
// guarantees. NaN or infinite inputs yield Invalid. Negative inputs are not
// rejected here; see CoerceMeasure.
func ComputeTarget(g Gender, weightKilograms, activityMinutes float64) Volume {
	if !finite(weightKilograms) || !finite(activityMinutes) {
		return Invalid
	}
	wc, tc := coefficients(g)
	v := decimal.NewFromFloat(weightKilograms).Mul(wc).
		Add(decimal.NewFromFloat(activityMinutes).Mul(tc)).
		Round(2)
	return Volume{liters: v, valid: true}
}

// ComputeTargetText is ComputeTarget over raw form text. Text that is not a
// finite number yields Invalid; see ParseMeasure for what is accepted.
func ComputeTargetText(g Gender, weightText, activityText string) Volume {
	w, err := ParseMeasure(weightText)
	if err != nil {
		return Invalid
	}
	a, err := ParseMeasure(activityText)
	if err != nil {
		return Invalid
	}
	return ComputeTarget(g, w, a)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// LitersOf wraps an amount already in liters, such as a stored planned
// norma, rounding it to two decimals. Non-finite or negative amounts yield
// Invalid.
func LitersOf(liters float64) Volume {
	if !finite(liters) || liters < 0 {
		return Invalid
	}
	return Volume{liters: decimal.NewFromFloat(liters).Round(2), valid: true}
}

// Progress returns how much of norma the consumed milliliters cover, as a
// whole percentage rounded down and capped at 100. An Invalid or zero norma
// yields 0.
func Progress(consumedMilliliters int, norma Volume) int {
	goal := norma.Milliliters()
	if goal <= 0 || consumedMilliliters <= 0 {
		return 0
	}
	if consumedMilliliters >= goal {
		return 100
	}
	return consumedMilliliters * 100 / goal
}
