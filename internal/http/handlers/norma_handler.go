// Norma HTTP handlers.
//
// This file exposes the daily-norma endpoints:
//   - GET /norma/calculate   (live target for the form inputs)
//   - GET /norma             (stored form and computed target)
//   - PUT /norma             (save the form and the planned daily amount)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoitStudentsWorks/water-tracker/internal/hydration"
	"github.com/GoitStudentsWorks/water-tracker/internal/services"
	"github.com/GoitStudentsWorks/water-tracker/internal/utils"
)

// NormaRequest is the daily-norma form. Numeric fields accept JSON numbers
// or strings; garbage and negative values are stored as 0.
type NormaRequest struct {
	// Name is optional; leaving it out keeps the stored name.
	Name string `json:"name" example:"anna@example.com"`
	// Gender is female or male (form labels like "forGirl" are accepted).
	// Defaults to female.
	Gender   string         `json:"gender" example:"female"`
	Weight   utils.FlexText `json:"weight_kg" swaggertype:"string" example:"60"`
	Activity utils.FlexText `json:"activity_minutes" swaggertype:"string" example:"30"`
	// Planned is the amount in liters the user will drink; 0 or empty uses
	// the computed target.
	Planned utils.FlexText `json:"planned_liters" swaggertype:"string" example:"2"`
}

// CalculateResponse is the live target. TargetLiters is null when weight
// or activity is not a number.
type CalculateResponse struct {
	Gender       hydration.Gender `json:"gender" example:"female"`
	TargetLiters hydration.Volume `json:"target_liters" swaggertype:"string" example:"13.80"`
	Display      string           `json:"display" example:"13.80 L"`
	Valid        bool             `json:"valid"`
}

// Calculate godoc
// @ID          calculateNorma
// @Summary     Compute the daily water target
// @Description target = weight*coef + activity*coef, rounded to 2 decimals.
// @Description Non-numeric input yields valid=false and a null target.
// @Tags        Norma
// @Produce     json
// @Param       gender    query  string  false  "female or male (default female)"  example(female)
// @Param       weight    query  string  false  "Body weight in kg"                example(60)
// @Param       activity  query  string  false  "Active sport time"                example(30)
// @Success     200  {object}  handlers.CalculateResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid gender"
// @Router      /norma/calculate [get]
func (h *Handlers) Calculate(c *gin.Context) {
	gender := c.DefaultQuery("gender", string(hydration.GenderFemale))
	v, err := h.normaSvc.Calculate(c.Request.Context(), gender, c.Query("weight"), c.Query("activity"))
	if err != nil {
		failFor(c, err, ErrCodeInternal)
		return
	}
	g, _ := hydration.ParseGender(gender)
	ok(c, http.StatusOK, CalculateResponse{
		Gender:       g,
		TargetLiters: v,
		Display:      v.String(),
		Valid:        v.Valid(),
	})
}

// GetNorma godoc
// @ID          getNorma
// @Summary     Get the daily-norma profile
// @Description Returns the stored form with its computed target, or the form
// @Description defaults (female, zero inputs, stored=false) when nothing is saved.
// @Tags        Norma
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Success     200  {object}  services.Norma
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /norma [get]
func (h *Handlers) GetNorma(c *gin.Context) {
	n, err := h.normaSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		failFor(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, n)
}

// SaveNorma godoc
// @ID          saveNorma
// @Summary     Save the daily-norma profile
// @Tags        Norma
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller identity"  example(user123)
// @Param       body       body    handlers.NormaRequest  true  "Daily-norma form"
// @Success     200  {object}  services.Norma
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /norma [put]
func (h *Handlers) SaveNorma(c *gin.Context) {
	var req NormaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid norma form")
		return
	}
	gender := req.Gender
	if strings.TrimSpace(gender) == "" {
		gender = string(hydration.GenderFemale)
	}

	n, err := h.normaSvc.Save(c.Request.Context(), userID(c), services.NormaInput{
		Name:     req.Name,
		Gender:   gender,
		Weight:   req.Weight.String(),
		Activity: req.Activity.String(),
		Planned:  req.Planned.String(),
	})
	if err != nil {
		failFor(c, err, ErrCodeSaveFailed)
		return
	}
	ok(c, http.StatusOK, n)
}
