package agenda

import (
	"context"
	"testing"
	"time"

	"boxbook/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %s: %v", s, err)
	}
	return d
}

func testCatalog(holidayDates ...string) (*Catalog, *StaticOverrides) {
	overrides := NewStaticOverrides()
	return NewCatalog(NewStaticHolidays(holidayDates...), overrides), overrides
}

func TestSlotsForClosedDays(t *testing.T) {
	catalog, _ := testCatalog("2025-01-01")
	ctx := context.Background()

	sunday := mustDate(t, "2025-06-08")
	slots, err := catalog.SlotsFor(ctx, sunday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on Sunday, got %d", len(slots))
	}

	holiday := mustDate(t, "2025-01-01")
	slots, err = catalog.SlotsFor(ctx, holiday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on holiday, got %d", len(slots))
	}
}

func TestSlotsForTemplates(t *testing.T) {
	catalog, _ := testCatalog()
	ctx := context.Background()

	saturday := mustDate(t, "2025-06-14")
	slots, err := catalog.SlotsFor(ctx, saturday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 Saturday slots, got %d", len(slots))
	}
	if slots[0].Time != "07:00" || slots[1].Time != "08:00" {
		t.Errorf("unexpected Saturday times: %s, %s", slots[0].Time, slots[1].Time)
	}

	tuesday := mustDate(t, "2025-06-10")
	slots, err = catalog.SlotsFor(ctx, tuesday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 8 {
		t.Fatalf("expected 8 weekday slots, got %d", len(slots))
	}
	if slots[0].Time != "06:30" || slots[7].Time != "19:30" {
		t.Errorf("weekday slots out of order: first %s last %s", slots[0].Time, slots[7].Time)
	}
}

func TestEffectiveCapacity(t *testing.T) {
	catalog, overrides := testCatalog()
	ctx := context.Background()

	capacity, err := catalog.EffectiveCapacity(ctx, "2025-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if capacity != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, capacity)
	}

	overrides.Put(ctx, models.DayOverride{Date: "2025-06-10", Capacity: 6})
	capacity, err = catalog.EffectiveCapacity(ctx, "2025-06-10")
	if err != nil {
		t.Fatal(err)
	}
	if capacity != 6 {
		t.Errorf("expected override capacity 6, got %d", capacity)
	}
}

func TestIsSlotEnabled(t *testing.T) {
	catalog, overrides := testCatalog()
	ctx := context.Background()

	enabled, err := catalog.IsSlotEnabled(ctx, "2025-06-10", "pm3")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("slot should default to enabled")
	}

	overrides.Put(ctx, models.DayOverride{
		Date:         "2025-06-10",
		EnabledSlots: map[string]bool{"pm3": false},
	})

	enabled, err = catalog.IsSlotEnabled(ctx, "2025-06-10", "pm3")
	if err != nil {
		t.Fatal(err)
	}
	if enabled {
		t.Error("pm3 should be disabled by override")
	}

	// Slots the override doesn't mention stay enabled.
	enabled, err = catalog.IsSlotEnabled(ctx, "2025-06-10", "pm4")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("pm4 should remain enabled")
	}
}

func TestTrainerFor(t *testing.T) {
	catalog, overrides := testCatalog()
	ctx := context.Background()

	overrides.Put(ctx, models.DayOverride{
		Date:     "2025-06-10",
		Trainers: map[string]string{"pm3": "trainer-7"},
	})

	trainer, err := catalog.TrainerFor(ctx, "2025-06-10", "pm3")
	if err != nil {
		t.Fatal(err)
	}
	if trainer != "trainer-7" {
		t.Errorf("expected trainer-7, got %q", trainer)
	}

	trainer, err = catalog.TrainerFor(ctx, "2025-06-11", "pm3")
	if err != nil {
		t.Fatal(err)
	}
	if trainer != "" {
		t.Errorf("expected no trainer, got %q", trainer)
	}
}

func TestEffectiveDays(t *testing.T) {
	// 2025-06-02 (Monday) is a holiday in this catalog.
	catalog, _ := testCatalog("2025-06-02")
	ctx := context.Background()

	// Full week Sun 2025-06-01 .. Sat 2025-06-07: Sunday and the Monday
	// holiday are closed, leaving 5 training days.
	days, err := catalog.EffectiveDays(ctx, mustDate(t, "2025-06-01"), mustDate(t, "2025-06-07"))
	if err != nil {
		t.Fatal(err)
	}
	if days != 5 {
		t.Errorf("expected 5 effective days, got %d", days)
	}

	// A week with no holidays: Mon-Sat open.
	days, err = catalog.EffectiveDays(ctx, mustDate(t, "2025-06-08"), mustDate(t, "2025-06-14"))
	if err != nil {
		t.Fatal(err)
	}
	if days != 6 {
		t.Errorf("expected 6 effective days, got %d", days)
	}
}

func TestWeekRange(t *testing.T) {
	// Wednesday 2025-06-11 belongs to the week 2025-06-08 .. 2025-06-14.
	start, end := WeekRange(mustDate(t, "2025-06-11"))
	if start.Format("2006-01-02") != "2025-06-08" {
		t.Errorf("week start = %s, want 2025-06-08", start.Format("2006-01-02"))
	}
	if end.Format("2006-01-02") != "2025-06-14" {
		t.Errorf("week end = %s, want 2025-06-14", end.Format("2006-01-02"))
	}

	// A Sunday is its own week start.
	start, _ = WeekRange(mustDate(t, "2025-06-08"))
	if start.Format("2006-01-02") != "2025-06-08" {
		t.Errorf("Sunday week start = %s, want 2025-06-08", start.Format("2006-01-02"))
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(mustDate(t, "2025-06-11"))
	if start.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("month start = %s", start.Format("2006-01-02"))
	}
	if end.Format("2006-01-02") != "2025-06-30" {
		t.Errorf("month end = %s", end.Format("2006-01-02"))
	}

	// February in a non-leap year.
	_, end = MonthRange(mustDate(t, "2025-02-10"))
	if end.Format("2006-01-02") != "2025-02-28" {
		t.Errorf("feb end = %s", end.Format("2006-01-02"))
	}
}
