package models

import "time"

// Booking entry status values. A roster entry only ever moves between
// these two states.
const (
	StatusBooked   = "booked"
	StatusAttended = "attended"
)

// User roles.
const (
	RoleAthlete = "athlete"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Password  string    `json:"-" bson:"password"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	PhotoRef  string    `json:"photoRef,omitempty" bson:"photoRef,omitempty"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
}

// ClassSlot is one bookable time-of-day offering from the agenda templates.
type ClassSlot struct {
	ID    string `json:"id" bson:"id"`
	Time  string `json:"time" bson:"time"` // HH:MM
	Label string `json:"label" bson:"label"`
	Type  string `json:"type" bson:"type"` // am, pm
}

// BookingEntry is one user's reservation inside a slot's list.
type BookingEntry struct {
	EntryID  string `json:"entryId" bson:"entryId"`
	UserID   string `json:"userId" bson:"userId"`
	Name     string `json:"name" bson:"name"`
	PhotoRef string `json:"photoRef,omitempty" bson:"photoRef,omitempty"`
	Status   string `json:"status" bson:"status"` // booked, attended
	BookedAt int64  `json:"bookedAt" bson:"bookedAt"`
}

// Roster holds every booking for one calendar date, keyed by slot time.
// Version backs the compare-and-swap write in the roster store.
type Roster struct {
	Date      string                    `json:"date" bson:"date"`
	Slots     map[string][]BookingEntry `json:"slots" bson:"slots"`
	Version   int64                     `json:"-" bson:"version"`
	UpdatedAt time.Time                 `json:"updatedAt" bson:"updatedAt"`
}

// FindUser returns the slot time and entry index for userID, or "" and -1
// when the user has no booking anywhere on this date.
func (r *Roster) FindUser(userID string) (string, int) {
	for slotTime, entries := range r.Slots {
		for i, e := range entries {
			if e.UserID == userID {
				return slotTime, i
			}
		}
	}
	return "", -1
}

// AttendanceRecord is the per-user, per-date attendance history document.
// One record per user per date; re-toggling rewrites it in place.
type AttendanceRecord struct {
	UserID     string    `json:"userId" bson:"userId"`
	Date       string    `json:"date" bson:"date"` // YYYY-MM-DD
	ClassTime  string    `json:"classTime" bson:"classTime"`
	Attended   bool      `json:"attended" bson:"attended"`
	RecordedAt time.Time `json:"recordedAt" bson:"recordedAt"`
}

// DayOverride changes slot visibility, capacity and trainer assignment for
// one specific date. Absence of a field means "use defaults".
type DayOverride struct {
	Date         string            `json:"date" bson:"date"`
	EnabledSlots map[string]bool   `json:"enabledSlots,omitempty" bson:"enabledSlots,omitempty"`
	Capacity     int               `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Trainers     map[string]string `json:"trainers,omitempty" bson:"trainers,omitempty"` // slotID -> trainerID
	UpdatedBy    string            `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Holiday is one closed date in the holiday set.
type Holiday struct {
	Date  string `json:"date" bson:"date"` // YYYY-MM-DD
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}
