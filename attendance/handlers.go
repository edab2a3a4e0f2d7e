package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"boxbook/models"
	"boxbook/roster"
	"boxbook/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Forbidden"
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

// POST /api/attendance {date, slotTime, targetUserId}
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Date         string `json:"date"`
		SlotTime     string `json:"slotTime"`
		TargetUserID string `json:"targetUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	actor := models.User{
		UserID: utils.GetUserIDFromRequest(r),
		Role:   utils.GetRoleFromRequest(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.engine.Mark(ctx, req.Date, req.SlotTime, req.TargetUserID, actor); err != nil {
		status, code := errorCode(err)
		utils.RespondWithError(w, status, code)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GET /api/attendance/:userId?from=&to=
func (h *Handler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	requester := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)
	if requester != userID && role != models.RoleTrainer && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	records, err := h.engine.records.History(ctx, userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"records": records})
}

// POST /api/attendance/:userId/bulk — historical import, admin only.
func (h *Handler) BulkImport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var records []models.AttendanceRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.engine.Import(ctx, ps.ByName("userId"), records); err != nil {
		status, code := errorCode(err)
		utils.RespondWithError(w, status, code)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imported": len(records)})
}
