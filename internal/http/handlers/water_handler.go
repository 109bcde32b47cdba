// Water HTTP handlers.
//
// This file exposes REST endpoints for intake records:
//   - GET    /water/today      (today's summary: records, total, norma, percent)
//   - GET    /water            (one day bucket, ETag support)
//   - GET    /water/defaults   (prefill for the add-entry form)
//   - GET    /water/{id}       (single record)
//   - POST   /water            (log a drink, Idempotency-Key support)
//   - PUT    /water/{id}       (edit dosage and/or time)
//   - DELETE /water/{id}       (remove)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous create
// exists for (user, key), the handler returns that record with 200 and sets
// `Idempotency-Replayed: true` instead of logging the drink twice.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GoitStudentsWorks/water-tracker/internal/domain"
	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
	"github.com/GoitStudentsWorks/water-tracker/internal/http/middleware"
	"github.com/GoitStudentsWorks/water-tracker/internal/services"
	"github.com/GoitStudentsWorks/water-tracker/internal/utils"
)

//
// DTOs
//

// EntryRequest is the add/edit entry form. Both fields are optional: an
// omitted field keeps the form's prefilled value (last dosage of the day and
// the current time on create, the record's own values on edit).
type EntryRequest struct {
	// Dosage in milliliters, as a JSON number or string. Garbage becomes 1,
	// values are clamped to 0..3000.
	Dosage utils.FlexText `json:"dosage" swaggertype:"string" example:"250"`
	// Time is a 24h HH:MM clock; "8:5" is accepted and stored as "08:05".
	Time string `json:"time" example:"08:30"`
}

// RecordResponse wraps a single intake record.
type RecordResponse struct {
	Record *domain.IntakeRecord `json:"record"`
}

// DayResponse is one day bucket in insertion order.
type DayResponse struct {
	Day              domain.DayKey         `json:"day"`
	Records          []domain.IntakeRecord `json:"records"`
	TotalMilliliters int                   `json:"total_ml" example:"1750"`
}

//
// Helpers
//

// bindEntry binds an optional JSON body; an empty body is an empty form.
func bindEntry(c *gin.Context) (EntryRequest, error) {
	var req EntryRequest
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// idempotencyKey reads the key validated by middleware.IdempotencyValidator,
// or the raw header when that middleware is not installed.
func idempotencyKey(c *gin.Context) string {
	if k, ok := middleware.GetIdempotencyKey(c); ok {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}

// recordID validates the :id path parameter.
func recordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "record id must be a UUID")
		return "", false
	}
	return id, true
}

func dayETag(userID string, day domain.DayKey, count int64, changed int64) string {
	return fmt.Sprintf(`W/"water:%s:%d-%s-%d:%d:%d"`, userID, day.Year, day.Month, day.Day, count, changed)
}

//
// Handlers
//

// Today godoc
// @ID          getToday
// @Summary     Today's intake summary
// @Description Returns today's records in insertion order, the consumed total,
// @Description the user's daily norma and the progress toward it (capped at 100).
// @Tags        Water
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Success     200  {object}  services.DaySummary
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water/today [get]
func (h *Handlers) Today(c *gin.Context) {
	sum, err := h.intakeSvc.Summary(c.Request.Context(), userID(c))
	if err != nil {
		failFor(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, sum)
}

// ListDay godoc
// @ID          listDay
// @Summary     List a day's intake records
// @Description Returns the records of one calendar day in insertion order.
// @Description Supports conditional requests via ETag / If-None-Match.
// @Tags        Water
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"          example(user123)
// @Param       date       query   string  false  "Day as YYYY-MM-DD (default today)"  example(2024-05-14)
// @Success     200  {object}  handlers.DayResponse
// @Success     304  "Not modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water [get]
func (h *Handlers) ListDay(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	day, err := h.intakeSvc.ParseDay(c.Query("date"))
	if err != nil {
		failFor(c, err, ErrCodeListFailed)
		return
	}

	// ETag pre-check (best effort).
	if count, last, err := h.intakeSvc.DayStats(ctx, uid, day); err == nil {
		var changed int64
		if last != nil {
			changed = last.UnixNano()
		}
		etag := dayETag(uid, day, count, changed)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	records, err := h.intakeSvc.ListDay(ctx, uid, day)
	if err != nil {
		failFor(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, DayResponse{
		Day:              day,
		Records:          records,
		TotalMilliliters: hydration.TotalDosage(records),
	})
}

// Defaults godoc
// @ID          getEntryDefaults
// @Summary     Add-entry prefill
// @Description The last dosage logged today (0 when none) and the current time.
// @Tags        Water
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Success     200  {object}  services.EntryDefaults
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water/defaults [get]
func (h *Handlers) Defaults(c *gin.Context) {
	d, err := h.intakeSvc.NewEntryDefaults(c.Request.Context(), userID(c))
	if err != nil {
		failFor(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, d)
}

// GetRecord godoc
// @ID          getRecord
// @Summary     Get an intake record
// @Tags        Water
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Param       id         path    string  true   "Record ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.RecordResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404  {object}  handlers.ErrorResponse  "Record unavailable"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water/{id} [get]
func (h *Handlers) GetRecord(c *gin.Context) {
	id, valid := recordID(c)
	if !valid {
		return
	}
	rec, err := h.intakeSvc.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		failFor(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, RecordResponse{Record: rec})
}

// CreateRecord godoc
// @ID          createRecord
// @Summary     Log a drink
// @Description Adds a record to today's bucket. Omitted fields take the form
// @Description defaults. Supports idempotency via the Idempotency-Key header
// @Description (same key → same record, 200 with Idempotency-Replayed: true).
// @Tags        Water
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false  "Caller identity"  example(user123)
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.EntryRequest  false  "Entry form"
// @Success     201  {object}  handlers.RecordResponse  "Created"
// @Success     200  {object}  handlers.RecordResponse  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse   "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse   "Replayed record was removed"
// @Failure     500  {object}  handlers.ErrorResponse   "Internal error"
// @Router      /water [post]
func (h *Handlers) CreateRecord(c *gin.Context) {
	req, err := bindEntry(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid entry: dosage must be a number or string, time a string")
		return
	}

	rec, replayed, err := h.intakeSvc.Create(c.Request.Context(), userID(c), services.EntryInput{
		Dosage:         req.Dosage.String(),
		Time:           req.Time,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		failFor(c, err, ErrCodeSaveFailed)
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, RecordResponse{Record: rec})
		return
	}
	ok(c, http.StatusCreated, RecordResponse{Record: rec})
}

// UpdateRecord godoc
// @ID          updateRecord
// @Summary     Edit an intake record
// @Description Changes dosage and/or time. The record keeps its day and list position.
// @Tags        Water
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Param       id         path    string  true   "Record ID (UUID)"  format(uuid)
// @Param       body       body    handlers.EntryRequest  true  "Entry form"
// @Success     200  {object}  handlers.RecordResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Record unavailable"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water/{id} [put]
func (h *Handlers) UpdateRecord(c *gin.Context) {
	id, valid := recordID(c)
	if !valid {
		return
	}
	req, err := bindEntry(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid entry: dosage must be a number or string, time a string")
		return
	}

	rec, err := h.intakeSvc.Edit(c.Request.Context(), userID(c), id, services.EntryInput{
		Dosage: req.Dosage.String(),
		Time:   req.Time,
	})
	if err != nil {
		failFor(c, err, ErrCodeSaveFailed)
		return
	}
	ok(c, http.StatusOK, RecordResponse{Record: rec})
}

// DeleteRecord godoc
// @ID          deleteRecord
// @Summary     Remove an intake record
// @Tags        Water
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Param       id         path    string  true   "Record ID (UUID)"  format(uuid)
// @Success     204  "Removed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404  {object}  handlers.ErrorResponse  "Record unavailable"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /water/{id} [delete]
func (h *Handlers) DeleteRecord(c *gin.Context) {
	id, valid := recordID(c)
	if !valid {
		return
	}
	if err := h.intakeSvc.Remove(c.Request.Context(), userID(c), id); err != nil {
		failFor(c, err, ErrCodeSaveFailed)
		return
	}
	noContent(c)
}
