package attendance

import (
	"context"
	"errors"
	"testing"

	"boxbook/models"
	"boxbook/roster"
)

func seedRoster(t *testing.T, store roster.Store, date, slotTime, userID string) {
	t.Helper()
	_, err := store.Update(context.Background(), date, func(r *models.Roster) error {
		r.Slots[slotTime] = append(r.Slots[slotTime], models.BookingEntry{
			EntryID: "e-" + userID,
			UserID:  userID,
			Name:    "User " + userID,
			Status:  models.StatusBooked,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("seeding roster: %v", err)
	}
}

func entryStatus(t *testing.T, store roster.Store, date, slotTime, userID string) string {
	t.Helper()
	r, err := store.Get(context.Background(), date)
	if err != nil {
		t.Fatalf("reading roster: %v", err)
	}
	for _, e := range r.Slots[slotTime] {
		if e.UserID == userID {
			return e.Status
		}
	}
	t.Fatalf("user %s not found in %s %s", userID, date, slotTime)
	return ""
}

func TestMarkRequiresTrainerOrAdmin(t *testing.T) {
	engine := NewEngine(roster.NewMemStore(), NewMemRecords(), nil, nil, nil)

	err := engine.Mark(context.Background(), "2025-06-10", "18:30", "alice",
		models.User{UserID: "bob", Role: models.RoleAthlete})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for athlete actor, got %v", err)
	}
}

func TestMarkTogglesAndRecords(t *testing.T) {
	ctx := context.Background()
	store := roster.NewMemStore()
	records := NewMemRecords()
	var invalidated []string
	engine := NewEngine(store, records, func(id string) { invalidated = append(invalidated, id) }, nil, nil)
	trainer := models.User{UserID: "coach", Role: models.RoleTrainer}

	seedRoster(t, store, "2025-06-10", "18:30", "alice")

	if err := engine.Mark(ctx, "2025-06-10", "18:30", "alice", trainer); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if got := entryStatus(t, store, "2025-06-10", "18:30", "alice"); got != models.StatusAttended {
		t.Errorf("status after mark = %q, want %q", got, models.StatusAttended)
	}
	history, _ := records.History(ctx, "alice", "", "")
	if len(history) != 1 || !history[0].Attended || history[0].ClassTime != "18:30" {
		t.Fatalf("unexpected history after mark: %+v", history)
	}

	// Toggling back rewrites the record rather than leaving a stale one.
	if err := engine.Mark(ctx, "2025-06-10", "18:30", "alice", trainer); err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if got := entryStatus(t, store, "2025-06-10", "18:30", "alice"); got != models.StatusBooked {
		t.Errorf("status after toggle back = %q, want %q", got, models.StatusBooked)
	}
	history, _ = records.History(ctx, "alice", "", "")
	if len(history) != 1 || history[0].Attended {
		t.Fatalf("record not rewritten on toggle back: %+v", history)
	}

	if len(invalidated) != 2 || invalidated[0] != "alice" {
		t.Errorf("stats invalidation calls = %v, want two for alice", invalidated)
	}
}

func TestMarkWithoutReservation(t *testing.T) {
	store := roster.NewMemStore()
	engine := NewEngine(store, NewMemRecords(), nil, nil, nil)
	trainer := models.User{UserID: "coach", Role: models.RoleTrainer}

	err := engine.Mark(context.Background(), "2025-06-10", "18:30", "ghost", trainer)
	if !errors.Is(err, ErrNoReservation) {
		t.Fatalf("expected ErrNoReservation, got %v", err)
	}

	// A user in another slot on the same date is not a match either.
	seedRoster(t, store, "2025-06-10", "06:30", "alice")
	err = engine.Mark(context.Background(), "2025-06-10", "18:30", "alice", trainer)
	if !errors.Is(err, ErrNoReservation) {
		t.Fatalf("expected ErrNoReservation for wrong slot, got %v", err)
	}
}

func TestMarkInvalidInput(t *testing.T) {
	engine := NewEngine(roster.NewMemStore(), NewMemRecords(), nil, nil, nil)
	admin := models.User{UserID: "root", Role: models.RoleAdmin}

	if err := engine.Mark(context.Background(), "junk", "18:30", "alice", admin); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date: expected ErrInvalidInput, got %v", err)
	}
	if err := engine.Mark(context.Background(), "2025-06-10", "18:30", "", admin); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty target: expected ErrInvalidInput, got %v", err)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	records := NewMemRecords()
	var invalidated []string
	engine := NewEngine(roster.NewMemStore(), records, func(id string) { invalidated = append(invalidated, id) }, nil, nil)

	err := engine.Import(ctx, "alice", []models.AttendanceRecord{
		{Date: "2025-06-09", ClassTime: "18:30", Attended: true},
		{Date: "2025-06-10", ClassTime: "06:30", Attended: true},
		{Date: "2025-06-11", ClassTime: "18:30", Attended: false},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	history, _ := records.History(ctx, "alice", "", "")
	if len(history) != 3 {
		t.Fatalf("history has %d records, want 3", len(history))
	}
	if history[0].Date != "2025-06-11" || history[2].Date != "2025-06-09" {
		t.Errorf("history not sorted date descending: %+v", history)
	}
	for _, rec := range history {
		if rec.UserID != "alice" {
			t.Errorf("record %s has userID %q, want alice", rec.Date, rec.UserID)
		}
		if rec.RecordedAt.IsZero() {
			t.Errorf("record %s has zero RecordedAt", rec.Date)
		}
	}
	if len(invalidated) != 1 {
		t.Errorf("expected one invalidation after import, got %v", invalidated)
	}

	err = engine.Import(ctx, "alice", []models.AttendanceRecord{{Date: "nope"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date in import: expected ErrInvalidInput, got %v", err)
	}
}
