// Package booking validates and applies reservations against the per-date
// roster. All rules run inside the roster store's serialized update, so the
// capacity and one-class-per-day checks never race each other.
package booking

import (
	"context"
	"errors"
	"time"

	"boxbook/agenda"
	"boxbook/models"
	"boxbook/roster"
	"boxbook/utils"

	"go.uber.org/zap"
)

var (
	ErrSlotNotBookable    = errors.New("slot not bookable")
	ErrAlreadyBookedToday = errors.New("already booked today")
	ErrSlotFull           = errors.New("slot full")
	ErrNoReservation      = errors.New("no reservation found")
	ErrInvalidInput       = errors.New("invalid input")
)

// Notifier is called after a roster changes, with the affected date.
type Notifier func(date string)

type Engine struct {
	catalog *agenda.Catalog
	rosters roster.Store
	notify  Notifier
	log     *zap.Logger
}

func NewEngine(catalog *agenda.Catalog, rosters roster.Store, notify Notifier, log *zap.Logger) *Engine {
	if notify == nil {
		notify = func(string) {}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{catalog: catalog, rosters: rosters, notify: notify, log: log}
}

// Book reserves slotTime on date for user. The user may hold at most one
// booking per date across all slots, and a slot never exceeds its effective
// capacity.
func (e *Engine) Book(ctx context.Context, date, slotTime string, user models.User) (*models.Roster, error) {
	day, err := utils.ParseDate(date)
	if err != nil || user.UserID == "" || !utils.ValidTime(slotTime) {
		return nil, ErrInvalidInput
	}

	slot, err := e.catalog.SlotByTime(ctx, day, slotTime)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotBookable
	}
	enabled, err := e.catalog.IsSlotEnabled(ctx, date, slot.ID)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrSlotNotBookable
	}
	capacity, err := e.catalog.EffectiveCapacity(ctx, date)
	if err != nil {
		return nil, err
	}

	updated, err := e.rosters.Update(ctx, date, func(r *models.Roster) error {
		if booked, _ := r.FindUser(user.UserID); booked != "" {
			return ErrAlreadyBookedToday
		}
		entries := r.Slots[slotTime]
		if len(entries) >= capacity {
			return ErrSlotFull
		}
		r.Slots[slotTime] = append(entries, models.BookingEntry{
			EntryID:  utils.NewID(),
			UserID:   user.UserID,
			Name:     user.Name,
			PhotoRef: user.PhotoRef,
			Status:   models.StatusBooked,
			BookedAt: time.Now().Unix(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("booking created",
		zap.String("user_id", user.UserID),
		zap.String("date", date),
		zap.String("slot", slotTime),
	)
	e.notify(date)
	return updated, nil
}

// Cancel removes the user's entry from slotTime on date. Removal is always
// legal; capacity is never re-checked.
func (e *Engine) Cancel(ctx context.Context, date, slotTime, userID string) (*models.Roster, error) {
	if _, err := utils.ParseDate(date); err != nil || userID == "" {
		return nil, ErrInvalidInput
	}

	updated, err := e.rosters.Update(ctx, date, func(r *models.Roster) error {
		entries := r.Slots[slotTime]
		kept := entries[:0:0]
		found := false
		for _, entry := range entries {
			if entry.UserID == userID {
				found = true
				continue
			}
			kept = append(kept, entry)
		}
		if !found {
			return ErrNoReservation
		}
		r.Slots[slotTime] = kept
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("booking cancelled",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.String("slot", slotTime),
	)
	e.notify(date)
	return updated, nil
}
