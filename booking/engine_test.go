package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"boxbook/agenda"
	"boxbook/models"
	"boxbook/roster"
)

func testUser(id string) models.User {
	return models.User{UserID: id, Name: "User " + id, Role: models.RoleAthlete}
}

func newTestEngine(holidays ...string) (*Engine, *agenda.StaticOverrides, roster.Store) {
	overrides := agenda.NewStaticOverrides()
	catalog := agenda.NewCatalog(agenda.NewStaticHolidays(holidays...), overrides)
	store := roster.NewMemStore()
	return NewEngine(catalog, store, nil, nil), overrides, store
}

func TestBookFillsSlotToCapacity(t *testing.T) {
	engine, _, store := newTestEngine()
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		if _, err := engine.Book(ctx, "2025-06-10", "18:30", testUser(fmt.Sprintf("u%d", i))); err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}

	_, err := engine.Book(ctx, "2025-06-10", "18:30", testUser("u5"))
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull, got %v", err)
	}

	r, _ := store.Get(ctx, "2025-06-10")
	if got := len(r.Slots["18:30"]); got != 4 {
		t.Errorf("slot holds %d entries, want 4", got)
	}
}

func TestOneClassPerDay(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := engine.Book(ctx, "2025-06-10", "18:30", testUser("alice")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := engine.Book(ctx, "2025-06-10", "19:30", testUser("alice"))
	if !errors.Is(err, ErrAlreadyBookedToday) {
		t.Fatalf("expected ErrAlreadyBookedToday, got %v", err)
	}

	// Same user on a different date is fine.
	if _, err := engine.Book(ctx, "2025-06-11", "18:30", testUser("alice")); err != nil {
		t.Fatalf("booking on another date failed: %v", err)
	}
}

func TestBookClosedOrUnknownSlot(t *testing.T) {
	engine, overrides, _ := newTestEngine("2025-01-01")
	ctx := context.Background()

	cases := []struct {
		name string
		date string
		time string
	}{
		{"holiday", "2025-01-01", "18:30"},
		{"sunday", "2025-06-08", "18:30"},
		{"unknown time", "2025-06-10", "12:00"},
		{"saturday evening", "2025-06-14", "18:30"},
	}
	for _, tc := range cases {
		_, err := engine.Book(ctx, tc.date, tc.time, testUser("u1"))
		if !errors.Is(err, ErrSlotNotBookable) {
			t.Errorf("%s: expected ErrSlotNotBookable, got %v", tc.name, err)
		}
	}

	overrides.Put(ctx, models.DayOverride{
		Date:         "2025-06-10",
		EnabledSlots: map[string]bool{"pm3": false},
	})
	_, err := engine.Book(ctx, "2025-06-10", "18:30", testUser("u1"))
	if !errors.Is(err, ErrSlotNotBookable) {
		t.Errorf("disabled slot: expected ErrSlotNotBookable, got %v", err)
	}
}

func TestCapacityOverride(t *testing.T) {
	engine, overrides, _ := newTestEngine()
	ctx := context.Background()

	overrides.Put(ctx, models.DayOverride{Date: "2025-06-10", Capacity: 2})

	for i := 1; i <= 2; i++ {
		if _, err := engine.Book(ctx, "2025-06-10", "06:30", testUser(fmt.Sprintf("u%d", i))); err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}
	_, err := engine.Book(ctx, "2025-06-10", "06:30", testUser("u3"))
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull at override capacity, got %v", err)
	}
}

func TestCancelThenRebook(t *testing.T) {
	engine, _, store := newTestEngine()
	ctx := context.Background()

	if _, err := engine.Book(ctx, "2025-06-10", "18:30", testUser("alice")); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Cancel(ctx, "2025-06-10", "18:30", "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Book(ctx, "2025-06-10", "18:30", testUser("alice")); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}

	r, _ := store.Get(ctx, "2025-06-10")
	count := 0
	for _, e := range r.Slots["18:30"] {
		if e.UserID == "alice" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("alice has %d entries, want exactly 1", count)
	}
}

func TestCancelWithoutBooking(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Cancel(ctx, "2025-06-10", "18:30", "nobody")
	if !errors.Is(err, ErrNoReservation) {
		t.Fatalf("expected ErrNoReservation, got %v", err)
	}
}

func TestCancelLeavesOthersInPlace(t *testing.T) {
	engine, _, store := newTestEngine()
	ctx := context.Background()

	engine.Book(ctx, "2025-06-10", "18:30", testUser("alice"))
	engine.Book(ctx, "2025-06-10", "18:30", testUser("bob"))

	if _, err := engine.Cancel(ctx, "2025-06-10", "18:30", "alice"); err != nil {
		t.Fatal(err)
	}

	r, _ := store.Get(ctx, "2025-06-10")
	entries := r.Slots["18:30"]
	if len(entries) != 1 || entries[0].UserID != "bob" {
		t.Errorf("expected only bob to remain, got %+v", entries)
	}
}

func TestConcurrentBookingRespectsCapacity(t *testing.T) {
	engine, _, store := newTestEngine()
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := engine.Book(ctx, "2025-06-10", "18:30", testUser(fmt.Sprintf("u%d", n)))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else if !errors.Is(err, ErrSlotFull) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes != 4 {
		t.Errorf("%d bookings succeeded, want 4", successes)
	}
	r, _ := store.Get(ctx, "2025-06-10")
	if got := len(r.Slots["18:30"]); got != 4 {
		t.Errorf("slot holds %d entries, want 4", got)
	}
}

func TestConcurrentSameUserOnePerDay(t *testing.T) {
	engine, _, store := newTestEngine()
	ctx := context.Background()

	slots := []string{"06:30", "07:30", "08:30", "09:30", "16:30", "17:30", "18:30", "19:30"}
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for _, slotTime := range slots {
		wg.Add(1)
		go func(st string) {
			defer wg.Done()
			if _, err := engine.Book(ctx, "2025-06-10", st, testUser("alice")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(slotTime)
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("%d bookings succeeded for one user on one day, want 1", successes)
	}

	r, _ := store.Get(ctx, "2025-06-10")
	total := 0
	for _, entries := range r.Slots {
		for _, e := range entries {
			if e.UserID == "alice" {
				total++
			}
		}
	}
	if total != 1 {
		t.Errorf("alice appears %d times across slots, want 1", total)
	}
}

func TestBookInvalidInput(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := engine.Book(ctx, "10/06/2025", "18:30", testUser("u1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date: expected ErrInvalidInput, got %v", err)
	}
	if _, err := engine.Book(ctx, "2025-06-10", "half past six", testUser("u1")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad time: expected ErrInvalidInput, got %v", err)
	}
	if _, err := engine.Book(ctx, "2025-06-10", "18:30", models.User{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty user: expected ErrInvalidInput, got %v", err)
	}
}
