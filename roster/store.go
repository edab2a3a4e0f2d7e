// Package roster owns the per-date booking documents. Every booking,
// cancellation and attendance toggle is a read-modify-write of one date's
// document, so the store serializes those updates: an in-process mutex per
// date plus a version check on the write. Operations on different dates
// proceed in parallel.
package roster

import (
	"context"
	"errors"
	"sync"
	"time"

	"boxbook/models"
)

// ErrConflict is returned when a write loses the version check against a
// concurrent writer (another process) after retries.
var ErrConflict = errors.New("roster: concurrent update conflict")

// Store loads and atomically updates one date's roster document.
type Store interface {
	// Get returns the roster for a date. A date with no bookings yet
	// yields an empty roster, not an error.
	Get(ctx context.Context, date string) (*models.Roster, error)

	// Update applies mutate to the current roster for date and persists
	// the result as a single atomic write. An error from mutate aborts
	// the update and leaves the stored roster untouched.
	Update(ctx context.Context, date string, mutate func(*models.Roster) error) (*models.Roster, error)
}

// keyedMutex hands out one mutex per date key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if l, ok := k.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	k.locks[key] = l
	return l
}

func emptyRoster(date string) *models.Roster {
	return &models.Roster{
		Date:  date,
		Slots: make(map[string][]models.BookingEntry),
	}
}

func cloneRoster(r *models.Roster) *models.Roster {
	out := &models.Roster{
		Date:      r.Date,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
		Slots:     make(map[string][]models.BookingEntry, len(r.Slots)),
	}
	for slotTime, entries := range r.Slots {
		copied := make([]models.BookingEntry, len(entries))
		copy(copied, entries)
		out.Slots[slotTime] = copied
	}
	return out
}

func touch(r *models.Roster) {
	r.Version++
	r.UpdatedAt = time.Now().UTC()
}
