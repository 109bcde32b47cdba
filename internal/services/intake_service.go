// Package services – IntakeService
//
// This file implements IntakeService, which owns the per-user day ledger of
// water intake records. Every mutation loads the affected day bucket inside a
// transaction, drives the entry dialog and ledger from the hydration package,
// and persists the resulting mutation. Mutations are last-writer-wins: two
// edits of the same record both succeed and the later commit is kept.
//
// Observability: public methods are OpenTelemetry-instrumented and persisted
// changes are counted in Prometheus.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
	"github.com/GoitStudentsWorks/water-tracker/internal/observability"
	"github.com/GoitStudentsWorks/water-tracker/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateScope is the idempotency scope of intake creation.
const CreateScope = "POST /water"

const dateLayout = "2006-01-02"

// NormaSource resolves the daily amount a user aims for.
type NormaSource interface {
	Norma(ctx context.Context, userID string) (hydration.Volume, error)
}

// IntakeService coordinates the day ledger and its persistence.
type IntakeService struct {
	DB *gorm.DB

	// Location decides which calendar day "now" falls on. Nil means UTC.
	Location *time.Location
	// Clock is the time source; nil means the system clock.
	Clock hydration.Clock
	// NewID generates record ids; nil means random UUIDs.
	NewID func() string

	// Norma feeds the day summary; optional.
	Norma NormaSource
	// IdempotencyTTL is how long a create's Idempotency-Key is honored.
	IdempotencyTTL time.Duration
}

// NewIntakeService constructs an IntakeService bucketing days in loc.
func NewIntakeService(db *gorm.DB, loc *time.Location, norma NormaSource) *IntakeService {
	return &IntakeService{
		DB:             db,
		Location:       loc,
		Norma:          norma,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// EntryInput carries the entry form fields. Dosage is the raw text of the
// numeric field and goes through direct-input coercion; an empty Dosage or
// Time keeps the dialog's prefilled value.
type EntryInput struct {
	Dosage string
	Time   string

	// IdempotencyKey makes Create safe to retry; optional.
	IdempotencyKey string
}

// EntryDefaults prefill the add-entry form.
type EntryDefaults struct {
	Dosage int    `json:"dosage" example:"250"`
	Time   string `json:"time" example:"08:30"`
}

// DaySummary is the state of one day bucket as the today screen shows it.
type DaySummary struct {
	Day              domain.DayKey         `json:"day"`
	Records          []domain.IntakeRecord `json:"records"`
	TotalMilliliters int                   `json:"total_ml" example:"1750"`
	Norma            hydration.Volume      `json:"norma_liters" swaggertype:"string" example:"2.00"`
	Percent          int                   `json:"percent" example:"87"`
	Defaults         EntryDefaults         `json:"defaults"`
}

func (s *IntakeService) now() time.Time {
	clock := s.Clock
	if clock == nil {
		clock = hydration.SystemClock
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return clock().In(loc)
}

func (s *IntakeService) newLedger(userID string, records []domain.IntakeRecord) *hydration.Ledger {
	gen := s.NewID
	if gen == nil {
		gen = uuid.NewString
	}
	return hydration.NewLedger(userID, records,
		hydration.WithClock(s.now),
		hydration.WithIDGenerator(gen),
	)
}

// Today returns the bucket the service clock is in.
func (s *IntakeService) Today() domain.DayKey {
	return domain.DayKeyOf(s.now())
}

// ParseDay resolves a YYYY-MM-DD date to its bucket. An empty string is
// today.
func (s *IntakeService) ParseDay(date string) (domain.DayKey, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return domain.DayKey{}, ErrInvalidDate
	}
	return domain.DayKeyOf(t), nil
}

// ListDay returns the records of a bucket in insertion order.
func (s *IntakeService) ListDay(ctx context.Context, userID string, day domain.DayKey) ([]domain.IntakeRecord, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "ListDay",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("day", dayString(day)),
		),
	)
	defer span.End()

	return repo.ListIntakesForDay(ctx, s.DB, userID, day)
}

// DayStats reports the record count and latest change of a bucket, for
// conditional responses.
func (s *IntakeService) DayStats(ctx context.Context, userID string, day domain.DayKey) (int64, *time.Time, error) {
	return repo.IntakesStats(ctx, s.DB, userID, day)
}

// Summary returns today's records, the consumed total, the user's norma and
// the progress toward it, plus the next entry's defaults.
func (s *IntakeService) Summary(ctx context.Context, userID string) (*DaySummary, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Summary",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	day := s.Today()
	records, err := repo.ListIntakesForDay(ctx, s.DB, userID, day)
	if err != nil {
		return nil, err
	}

	norma := hydration.Invalid
	if s.Norma != nil {
		if norma, err = s.Norma.Norma(ctx, userID); err != nil {
			return nil, err
		}
	}

	l := s.newLedger(userID, records)
	d := hydration.OpenCreateDialog(records, s.now)
	return &DaySummary{
		Day:              day,
		Records:          l.Records(),
		TotalMilliliters: l.Total(),
		Norma:            norma,
		Percent:          hydration.Progress(l.Total(), norma),
		Defaults:         EntryDefaults{Dosage: d.Dosage, Time: d.Time},
	}, nil
}

// NewEntryDefaults returns the add-entry prefill: the last added dosage of
// today (0 when none) and the current time.
func (s *IntakeService) NewEntryDefaults(ctx context.Context, userID string) (EntryDefaults, error) {
	records, err := repo.ListIntakesForDay(ctx, s.DB, userID, s.Today())
	if err != nil {
		return EntryDefaults{}, err
	}
	d := hydration.OpenCreateDialog(records, s.now)
	return EntryDefaults{Dosage: d.Dosage, Time: d.Time}, nil
}

// Get returns the record with id owned by userID.
func (s *IntakeService) Get(ctx context.Context, userID, id string) (*domain.IntakeRecord, error) {
	rec, err := repo.GetIntake(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

// IdempotencyExists reports whether a live create result is stored for key.
func (s *IntakeService) IdempotencyExists(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return rec != nil, err
}

// Create logs a new intake in today's bucket. When in.IdempotencyKey matches
// a stored create, the earlier record is returned with replayed=true and
// nothing is written.
func (s *IntakeService) Create(ctx context.Context, userID string, in EntryInput) (rec *domain.IntakeRecord, replayed bool, err error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Bool("idempotent", in.IdempotencyKey != ""),
		),
	)
	defer span.End()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.IdempotencyKey != "" {
			prev, err := s.replay(ctx, tx, userID, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if prev != nil {
				rec, replayed = prev, true
				return nil
			}
		}

		records, err := repo.ListIntakesForDay(ctx, tx, userID, s.Today())
		if err != nil {
			return err
		}
		l := s.newLedger(userID, records)
		d, err := applyInput(hydration.OpenCreateDialog(records, s.now), in)
		if err != nil {
			return err
		}
		_, created, mut, err := d.Save(l)
		if err != nil {
			return err
		}
		if err := persist(ctx, tx, mut); err != nil {
			return err
		}
		if in.IdempotencyKey != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, userID, CreateScope, in.IdempotencyKey, created.ID, http.StatusCreated, s.now(), s.IdempotencyTTL); err != nil {
				return err
			}
		}
		rec = &created
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	if !replayed {
		observability.ObserveIntakeMutation(string(hydration.MutationCreate), rec.Dosage)
	}
	return rec, replayed, nil
}

func (s *IntakeService) replay(ctx context.Context, tx *gorm.DB, userID, key string) (*domain.IntakeRecord, error) {
	idem, err := repo.GetIdempotency(ctx, tx, userID, CreateScope, key, s.now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	prev, err := repo.GetIntake(ctx, tx, idem.RecordID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		// The record was removed since; the key still answers with not found.
		return nil, ErrRecordNotFound
	}
	return prev, err
}

// Edit changes dosage and/or time of the record with id. Its day bucket and
// list position stay as they are.
func (s *IntakeService) Edit(ctx context.Context, userID, id string, in EntryInput) (*domain.IntakeRecord, error) {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Edit",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("record.id", id),
		),
	)
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: edit requires an id", ErrMalformedRecord)
	}

	var out domain.IntakeRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, records, err := s.bucketOf(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		d, err := hydration.OpenEditDialog(records, id)
		if err != nil {
			return err
		}
		if d, err = applyInput(d, in); err != nil {
			return err
		}
		_, edited, mut, err := d.Save(l)
		if err != nil {
			return err
		}
		out = edited
		return persist(ctx, tx, mut)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	observability.ObserveIntakeMutation(string(hydration.MutationUpdate), out.Dosage)
	return &out, nil
}

// Remove deletes the record with id. A miss returns ErrRecordNotFound and
// changes nothing.
func (s *IntakeService) Remove(ctx context.Context, userID, id string) error {
	tr := otel.Tracer("services/IntakeService")
	ctx, span := tr.Start(ctx, "Remove",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("record.id", id),
		),
	)
	defer span.End()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, _, err := s.bucketOf(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		mut, err := l.Remove(id)
		if err != nil {
			return err
		}
		return persist(ctx, tx, mut)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	observability.ObserveIntakeMutation(string(hydration.MutationDelete), 0)
	return nil
}

// bucketOf loads the ledger of the day bucket the record with id lives in.
func (s *IntakeService) bucketOf(ctx context.Context, tx *gorm.DB, userID, id string) (*hydration.Ledger, []domain.IntakeRecord, error) {
	rec, err := repo.GetIntake(ctx, tx, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	records, err := repo.ListIntakesForDay(ctx, tx, userID, rec.DayKey())
	if err != nil {
		return nil, nil, err
	}
	return s.newLedger(userID, records), records, nil
}

// applyInput feeds the non-empty form fields into the dialog.
func applyInput(d hydration.Dialog, in EntryInput) (hydration.Dialog, error) {
	var err error
	if strings.TrimSpace(in.Dosage) != "" {
		if d, err = d.InputDosage(in.Dosage); err != nil {
			return d, err
		}
	}
	if strings.TrimSpace(in.Time) != "" {
		if d, err = d.InputTime(in.Time); err != nil {
			return d, err
		}
	}
	return d, nil
}

// persist writes one ledger mutation.
func persist(ctx context.Context, tx *gorm.DB, mut hydration.Mutation) error {
	rec := mut.Record
	switch mut.Kind {
	case hydration.MutationCreate:
		return repo.CreateIntake(ctx, tx, &rec)
	case hydration.MutationUpdate:
		err := repo.UpdateIntake(ctx, tx, rec)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	case hydration.MutationDelete:
		err := repo.DeleteIntake(ctx, tx, rec.ID, rec.UserID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	default:
		return fmt.Errorf("%w: unknown mutation %q", ErrMalformedRecord, mut.Kind)
	}
}

func dayString(d domain.DayKey) string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month, d.Year)
}
