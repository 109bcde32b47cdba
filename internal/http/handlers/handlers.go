// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate input, call the
// application services, and translate results into HTTP responses
// (including conditional and idempotent-replay responses).
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
	"github.com/GoitStudentsWorks/water-tracker/internal/http/middleware"
	"github.com/GoitStudentsWorks/water-tracker/internal/services"
)

//
// Service contracts (context-aware)
//

// IntakeService is the day ledger as the HTTP layer consumes it.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IntakeService interface {
	// ParseDay resolves YYYY-MM-DD (empty = today) to a day bucket.
	ParseDay(date string) (domain.DayKey, error)
	ListDay(ctx context.Context, userID string, day domain.DayKey) ([]domain.IntakeRecord, error)
	// DayStats returns the live record count and last change of a bucket.
	DayStats(ctx context.Context, userID string, day domain.DayKey) (int64, *time.Time, error)
	Summary(ctx context.Context, userID string) (*services.DaySummary, error)
	NewEntryDefaults(ctx context.Context, userID string) (services.EntryDefaults, error)
	Get(ctx context.Context, userID, id string) (*domain.IntakeRecord, error)
	// Create reports replayed=true when the idempotency key matched an
	// earlier create.
	Create(ctx context.Context, userID string, in services.EntryInput) (*domain.IntakeRecord, bool, error)
	Edit(ctx context.Context, userID, id string, in services.EntryInput) (*domain.IntakeRecord, error)
	Remove(ctx context.Context, userID, id string) error
}

// NormaService is the daily target calculator and norma profile.
type NormaService interface {
	Calculate(ctx context.Context, gender, weight, activity string) (hydration.Volume, error)
	Get(ctx context.Context, userID string) (*services.Norma, error)
	Save(ctx context.Context, userID string, in services.NormaInput) (*services.Norma, error)
}

//
// Handler wiring
//

// Handlers groups the water and norma endpoints.
type Handlers struct {
	intakeSvc IntakeService
	normaSvc  NormaService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(intakeSvc IntakeService, normaSvc NormaService) *Handlers {
	return &Handlers{intakeSvc: intakeSvc, normaSvc: normaSvc}
}

// userID extracts the caller id from the Gin context (set by
// middleware.Identity or an auth layer). If absent, it falls back to the
// X-User-ID header and finally to the demo user.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader(middleware.UserIDHeader)); h != "" {
			return h
		}
	}
	return middleware.DemoUser
}
