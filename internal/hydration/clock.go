package hydration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time { return time.Now() }

// FormatClock renders t as zero-padded "HH:MM" in t's location.
func FormatClock(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DefaultTimeNow snapshots clock for a freshly opened entry form.
func DefaultTimeNow(clock Clock) string {
	if clock == nil {
		clock = SystemClock
	}
	return FormatClock(clock())
}

// NormalizeClock validates a user-entered time and returns it zero-padded.
// It accepts "H:MM", "HH:MM" and the "HH:MM:SS" form some time inputs emit
// (seconds are dropped).
func NormalizeClock(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", ErrInvalidTime
	}
	h, err := clockPart(parts[0], 23)
	if err != nil {
		return "", err
	}
	m, err := clockPart(parts[1], 59)
	if err != nil {
		return "", err
	}
	if len(parts) == 3 {
		if _, err := clockPart(parts[2], 59); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func clockPart(s string, max int) (int, error) {
	if len(s) == 0 || len(s) > 2 || strings.IndexFunc(s, notDigit) >= 0 {
		return 0, ErrInvalidTime
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, ErrInvalidTime
	}
	return n, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }
