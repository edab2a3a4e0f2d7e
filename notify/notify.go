// Package notify owns the per-user daily reminder budget. The counter is an
// injectable Redis key (user + day) instead of ambient client-side state, so
// every caller shares one view of how many reminders a user has left.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"boxbook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const DefaultDailyLimit = 3

type ReminderLimiter struct {
	conn  *redis.Client
	limit int64
}

func NewReminderLimiter(conn *redis.Client, limit int64) *ReminderLimiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &ReminderLimiter{conn: conn, limit: limit}
}

func reminderKey(userID, day string) string {
	return fmt.Sprintf("remind:%s:%s", userID, day)
}

// Allow consumes one reminder slot for the user on the given day and
// reports whether the daily budget still covers it.
func (l *ReminderLimiter) Allow(ctx context.Context, userID, day string) (bool, error) {
	key := reminderKey(userID, day)
	n, err := l.conn.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// First reminder of the day sets the key to expire after it.
		_ = l.conn.Expire(ctx, key, 48*time.Hour).Err()
	}
	return n <= l.limit, nil
}

type Handler struct {
	limiter *ReminderLimiter
}

func NewHandler(limiter *ReminderLimiter) *Handler {
	return &Handler{limiter: limiter}
}

// POST /api/reminders {date} — reports whether one more class reminder may
// be sent to the calling user today. Delivery itself is the client's job.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "ValidationError")
		return
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
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

	allowed, err := h.limiter.Allow(ctx, userID, req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "InfrastructureError")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"allowed": allowed})
}
