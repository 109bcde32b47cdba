package hydration

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseMeasure parses a weight or activity field. Surrounding space is
// ignored, a decimal comma is accepted, and an empty field reads as 0 (an
// untouched input). Anything else that is not a finite number returns
// ErrInvalidNumericInput.
func ParseMeasure(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, nil
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return 0, ErrInvalidNumericInput
	}
	return f, nil
}

// CoerceMeasure is the form-layer sanitizer for calculator inputs:
// non-numeric, non-finite and negative values all become 0.
func CoerceMeasure(text string) float64 {
	f, err := ParseMeasure(text)
	if err != nil {
		return 0
	}
	return NonNegative(f)
}

// NonNegative maps negatives and non-finite values to 0.
func NonNegative(f float64) float64 {
	if !finite(f) || f < 0 {
		return 0
	}
	return f
}

// CoerceDosageText converts the dosage field's text to a clamped dosage
// under the direct-input policy. Malformed text is treated as a
// non-positive entry and lands on that policy's floor, so it never blocks
// saving. Numbers too large to represent clamp like any other out-of-range
// amount. Fractions round to the nearest milliliter.
func CoerceDosageText(text string) int {
	s := strings.TrimSpace(text)
	f, err := strconv.ParseFloat(s, 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
		return ClampDosage(0, FloorDirectInput)
	}
	switch {
	case f >= MaxDosage:
		return MaxDosage
	case f <= 0:
		return ClampDosage(0, FloorDirectInput)
	}
	return ClampDosage(int(math.Round(f)), FloorDirectInput)
}
