// Package services – NormaService
//
// This file implements NormaService, which computes a user's recommended
// daily water target and stores the daily-norma form: gender, weight,
// activity time and the amount the user plans to drink.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
	"github.com/GoitStudentsWorks/water-tracker/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ProfileRepo defines the repository contract required by NormaService.
type ProfileRepo interface {
	// GetProfile returns the stored profile or repo.ErrNotFound.
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.UserProfile, error)

	// UpsertProfile creates or fully overwrites the profile.
	UpsertProfile(ctx context.Context, db *gorm.DB, p *domain.UserProfile) error
}

// NormaService provides the daily target calculator and the norma profile.
type NormaService struct {
	DB   *gorm.DB
	Repo ProfileRepo
}

// NewNormaService constructs a NormaService.
func NewNormaService(db *gorm.DB, r ProfileRepo) *NormaService {
	return &NormaService{DB: db, Repo: r}
}

// NormaInput is the daily-norma form as submitted. Numeric fields are raw
// text; Planned is the user's own "how much will you drink" amount in liters.
type NormaInput struct {
	Name     string
	Gender   string
	Weight   string
	Activity string
	Planned  string
}

// Norma is the stored profile together with its computed target.
type Norma struct {
	Name            string           `json:"name,omitempty" example:"anna@example.com"`
	DisplayName     string           `json:"display_name,omitempty" example:"anna"`
	Initial         string           `json:"initial,omitempty" example:"A"`
	Gender          hydration.Gender `json:"gender" example:"female"`
	WeightKilograms float64          `json:"weight_kg" example:"60"`
	ActivityMinutes float64          `json:"activity_minutes" example:"30"`
	Target          hydration.Volume `json:"target_liters" swaggertype:"string" example:"13.80"`
	Planned         hydration.Volume `json:"planned_liters" swaggertype:"string" example:"2.00"`
	// Stored is false when the user never saved the form and defaults are
	// shown.
	Stored bool `json:"stored"`
}

// Calculate computes the target from raw form text. Unparseable or
// non-finite numbers yield hydration.Invalid, not an error; only an unknown
// gender fails. Negative numbers count as 0, as in Save.
func (s *NormaService) Calculate(ctx context.Context, gender, weight, activity string) (hydration.Volume, error) {
	tr := otel.Tracer("services/NormaService")
	_, span := tr.Start(ctx, "Calculate",
		trace.WithAttributes(attribute.String("gender", gender)),
	)
	defer span.End()

	g, ok := hydration.ParseGender(gender)
	if !ok {
		return hydration.Invalid, ErrInvalidGender
	}
	v := hydration.Invalid
	w, werr := hydration.ParseMeasure(weight)
	a, aerr := hydration.ParseMeasure(activity)
	if werr == nil && aerr == nil {
		v = hydration.ComputeTarget(g, hydration.NonNegative(w), hydration.NonNegative(a))
	}
	observability.ObserveNormaCalculation(v.Valid())
	return v, nil
}

// Get returns the user's stored norma, or the form defaults (female, zero
// inputs) when nothing is stored yet.
func (s *NormaService) Get(ctx context.Context, userID string) (*Norma, error) {
	tr := otel.Tracer("services/NormaService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := s.Repo.GetProfile(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return normaOf(domain.UserProfile{UserID: userID, Gender: string(hydration.GenderFemale)}, false), nil
	}
	if err != nil {
		return nil, err
	}
	return normaOf(*p, true), nil
}

// Norma returns the amount the user aims for per day: the planned amount
// when set, the computed target otherwise. Users without a profile get
// hydration.Invalid.
func (s *NormaService) Norma(ctx context.Context, userID string) (hydration.Volume, error) {
	n, err := s.Get(ctx, userID)
	if err != nil {
		return hydration.Invalid, err
	}
	if !n.Stored {
		return hydration.Invalid, nil
	}
	return n.Planned, nil
}

// Save stores the form. Numeric fields are coerced the way the form does it
// (garbage and negatives become 0); an empty or zero planned amount falls back
// to the computed target. A blank name keeps the stored one.
func (s *NormaService) Save(ctx context.Context, userID string, in NormaInput) (*Norma, error) {
	tr := otel.Tracer("services/NormaService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	g, ok := hydration.ParseGender(in.Gender)
	if !ok {
		return nil, ErrInvalidGender
	}
	weight := hydration.CoerceMeasure(in.Weight)
	activity := hydration.CoerceMeasure(in.Activity)
	planned := hydration.CoerceMeasure(in.Planned)
	if planned == 0 {
		planned = hydration.ComputeTarget(g, weight, activity).Float64()
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		prev, err := s.Repo.GetProfile(ctx, s.DB, userID)
		switch {
		case err == nil:
			name = prev.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			span.RecordError(err)
			return nil, err
		}
	}

	p := &domain.UserProfile{
		UserID:           userID,
		Name:             name,
		Gender:           string(g),
		WeightKilograms:  weight,
		ActivityMinutes:  activity,
		DailyNormaLiters: hydration.LitersOf(planned).Float64(),
	}
	if err := s.Repo.UpsertProfile(ctx, s.DB, p); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return normaOf(*p, true), nil
}

func normaOf(p domain.UserProfile, stored bool) *Norma {
	g, ok := hydration.ParseGender(p.Gender)
	if !ok {
		g = hydration.GenderFemale
	}
	target := hydration.ComputeTarget(g, p.WeightKilograms, p.ActivityMinutes)
	planned := hydration.LitersOf(p.DailyNormaLiters)
	if p.DailyNormaLiters == 0 {
		planned = target
	}
	return &Norma{
		Name:            p.Name,
		DisplayName:     p.DisplayName(),
		Initial:         p.Initial(),
		Gender:          g,
		WeightKilograms: p.WeightKilograms,
		ActivityMinutes: p.ActivityMinutes,
		Target:          target,
		Planned:         planned,
		Stored:          stored,
	}
}
