package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"boxbook/models"
	"boxbook/rdx"
	"boxbook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

type Handler struct {
	calc  *Calculator
	cache *redis.Client
}

func NewHandler(calc *Calculator, cache *redis.Client) *Handler {
	return &Handler{calc: calc, cache: cache}
}

func cacheKey(userID, rangeName, ref string) string {
	return fmt.Sprintf("stats:%s:%s:%s", userID, rangeName, ref)
}

// InvalidateUser drops every cached summary for a user. Wired into the
// attendance engine so stats never serve stale history.
func InvalidateUser(userID string) {
	keys, err := rdx.Conn.Keys(context.Background(), "stats:"+userID+":*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	rdx.Conn.Del(context.Background(), keys...)
}

// GET /api/stats/:userId?range=week|month&ref=YYYY-MM-DD
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	requester := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)
	if requester != userID && role != models.RoleTrainer && role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = "week"
	}
	if rangeName != "week" && rangeName != "month" {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}

	refStr := r.URL.Query().Get("ref")
	ref := time.Now().UTC()
	if refStr != "" {
		parsed, err := utils.ParseDate(refStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
			return
		}
		ref = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := cacheKey(userID, rangeName, utils.DateKey(ref))
	if h.cache != nil {
		if val, err := h.cache.Get(ctx, key).Result(); err == nil && val != "" {
			var cached Summary
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				utils.RespondWithJSON(w, http.StatusOK, utils.M{"stats": cached})
				return
			}
		}
	}

	var summary *Summary
	var err error
	if rangeName == "month" {
		summary, err = h.calc.Monthly(ctx, userID, ref)
	} else {
		summary, err = h.calc.Weekly(ctx, userID, ref)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}

	if h.cache != nil {
		if jsonBytes, err := json.Marshal(summary); err == nil {
			_ = h.cache.Set(ctx, key, jsonBytes, cacheTTL).Err()
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"stats": summary})
}
