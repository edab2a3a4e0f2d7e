// Package admin exposes the schedule configuration surface: per-date
// overrides (slot visibility, capacity, trainer assignment) and the holiday
// set. All routes are admin-gated at the router.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"boxbook/agenda"
	"boxbook/models"
	"boxbook/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	overrides *agenda.MongoOverrides
	holidays  *agenda.MongoHolidays
}

func NewHandler(overrides *agenda.MongoOverrides, holidays *agenda.MongoHolidays) *Handler {
	return &Handler{overrides: overrides, holidays: holidays}
}

// GET /api/admin/schedule/:date
func (h *Handler) GetOverride(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	override, err := h.overrides.Get(ctx, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"override": override})
}

// PUT /api/admin/schedule/:date
func (h *Handler) PutOverride(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	var override models.DayOverride
	if err := json.NewDecoder(r.Body).Decode(&override); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}
	if override.Capacity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}
	override.Date = date
	override.UpdatedBy = utils.GetUserIDFromRequest(r)
	override.UpdatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.overrides.Put(ctx, override); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"override": override})
}

// GET /api/admin/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	holidays, err := h.holidays.List(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"holidays": holidays})
}

// POST /api/admin/holidays {date, label}
func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var holiday models.Holiday
	if err := json.NewDecoder(r.Body).Decode(&holiday); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}
	if _, err := utils.ParseDate(holiday.Date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.holidays.Add(ctx, holiday); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"holiday": holiday})
}

// DELETE /api/admin/holidays/:date
func (h *Handler) RemoveHoliday(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.holidays.Remove(ctx, date); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
