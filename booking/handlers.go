package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"boxbook/agenda"
	"boxbook/db"
	"boxbook/models"
	"boxbook/roster"
	"boxbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type Handler struct {
	engine  *Engine
	catalog *agenda.Catalog
	rosters roster.Store
}

func NewHandler(engine *Engine, catalog *agenda.Catalog, rosters roster.Store) *Handler {
	return &Handler{engine: engine, catalog: catalog, rosters: rosters}
}

// errorCode maps engine errors to the wire error codes and HTTP statuses.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrSlotFull):
		return http.StatusConflict, "SlotFull"
	case errors.Is(err, ErrAlreadyBookedToday):
		return http.StatusConflict, "AlreadyBookedToday"
	case errors.Is(err, ErrSlotNotBookable):
		return http.StatusConflict, "SlotNotBookable"
	case errors.Is(err, ErrNoReservation):
		return http.StatusNotFound, "NoReservationFound"
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "ValidationError"
	case errors.Is(err, roster.ErrConflict):
		return http.StatusConflict, "ConflictError"
	default:
		return http.StatusInternalServerError, "InfrastructureError"
	}
}

// GET /api/slots?date=YYYY-MM-DD
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	day, err := utils.ParseDate(date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slots, err := h.catalog.SlotsFor(ctx, day)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}

	capacity, err := h.catalog.EffectiveCapacity(ctx, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}

	type slotView struct {
		SlotID   string `json:"slotId"`
		Time     string `json:"time"`
		Label    string `json:"label"`
		Capacity int    `json:"capacity"`
		Enabled  bool   `json:"enabled"`
	}
	views := make([]slotView, 0, len(slots))
	for _, s := range slots {
		enabled, err := h.catalog.IsSlotEnabled(ctx, date, s.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
			return
		}
		views = append(views, slotView{
			SlotID:   s.ID,
			Time:     s.Time,
			Label:    s.Label,
			Capacity: capacity,
			Enabled:  enabled,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"date": date, "slots": views})
}

// GET /api/rosters/:date
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rst, err := h.rosters.Get(ctx, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"roster": rst})
}

// POST /api/bookings {date, slotTime}
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Date     string `json:"date"`
		SlotTime string `json:"slotTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	updated, err := h.engine.Book(ctx, req.Date, req.SlotTime, user)
	if err != nil {
		status, code := errorCode(err)
		utils.RespondWithError(w, status, code)
		return
	}

	var entry *models.BookingEntry
	entries := updated.Slots[req.SlotTime]
	for i := range entries {
		if entries[i].UserID == userID {
			entry = &entries[i]
			break
		}
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": entry, "roster": updated})
}

// DELETE /api/bookings/:date/:slotTime
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")
	slotTime := ps.ByName("slotTime")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.engine.Cancel(ctx, date, slotTime, userID); err != nil {
		status, code := errorCode(err)
		utils.RespondWithError(w, status, code)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
