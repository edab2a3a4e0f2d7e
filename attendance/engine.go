// Package attendance toggles roster entries between booked and attended and
// keeps the per-user attendance history in step. The history record for a
// user/date is rewritten on every toggle so it always reflects the entry's
// current status (no stale "attended" records after an un-mark).
package attendance

import (
	"context"
	"errors"
	"time"

	"boxbook/models"
	"boxbook/roster"
	"boxbook/utils"

	"go.uber.org/zap"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrNoReservation = errors.New("no reservation found")
	ErrInvalidInput  = errors.New("invalid input")
)

// RecordStore persists the per-user, per-date attendance history.
type RecordStore interface {
	Upsert(ctx context.Context, rec models.AttendanceRecord) error
	// History returns the user's records with from <= date <= to,
	// sorted by date descending. Empty bounds mean unbounded.
	History(ctx context.Context, userID, from, to string) ([]models.AttendanceRecord, error)
}

// Invalidator drops cached derived stats for a user after their history
// changes.
type Invalidator func(userID string)

type Engine struct {
	rosters    roster.Store
	records    RecordStore
	invalidate Invalidator
	notify     func(date string)
	log        *zap.Logger
}

func NewEngine(rosters roster.Store, records RecordStore, invalidate Invalidator, notify func(string), log *zap.Logger) *Engine {
	if invalidate == nil {
		invalidate = func(string) {}
	}
	if notify == nil {
		notify = func(string) {}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rosters: rosters, records: records, invalidate: invalidate, notify: notify, log: log}
}

// Mark toggles the target user's entry in slotTime on date between booked
// and attended. Only trainers and admins may call it. The user's attendance
// record for the date is upserted to match the new status.
func (e *Engine) Mark(ctx context.Context, date, slotTime, targetUserID string, actor models.User) error {
	if actor.Role != models.RoleTrainer && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if _, err := utils.ParseDate(date); err != nil || targetUserID == "" {
		return ErrInvalidInput
	}

	var attended bool
	_, err := e.rosters.Update(ctx, date, func(r *models.Roster) error {
		entries := r.Slots[slotTime]
		for i := range entries {
			if entries[i].UserID != targetUserID {
				continue
			}
			if entries[i].Status == models.StatusAttended {
				entries[i].Status = models.StatusBooked
			} else {
				entries[i].Status = models.StatusAttended
			}
			attended = entries[i].Status == models.StatusAttended
			return nil
		}
		return ErrNoReservation
	})
	if err != nil {
		return err
	}

	rec := models.AttendanceRecord{
		UserID:     targetUserID,
		Date:       date,
		ClassTime:  slotTime,
		Attended:   attended,
		RecordedAt: time.Now().UTC(),
	}
	if err := e.records.Upsert(ctx, rec); err != nil {
		// The roster toggle committed but the history write failed; the
		// next toggle rewrites the record, so report and let the caller
		// retry rather than unwinding the roster.
		e.log.Error("attendance record write failed",
			zap.String("user_id", targetUserID),
			zap.String("date", date),
			zap.Error(err),
		)
		return err
	}

	e.log.Info("attendance toggled",
		zap.String("user_id", targetUserID),
		zap.String("date", date),
		zap.String("slot", slotTime),
		zap.Bool("attended", attended),
	)
	e.invalidate(targetUserID)
	e.notify(date)
	return nil
}

// Import bulk-loads historical attendance records for a user.
func (e *Engine) Import(ctx context.Context, userID string, records []models.AttendanceRecord) error {
	for _, rec := range records {
		if _, err := utils.ParseDate(rec.Date); err != nil {
			return ErrInvalidInput
		}
		rec.UserID = userID
		if rec.RecordedAt.IsZero() {
			rec.RecordedAt = time.Now().UTC()
		}
		if err := e.records.Upsert(ctx, rec); err != nil {
			return err
		}
	}
	e.invalidate(userID)
	return nil
}
