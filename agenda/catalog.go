package agenda

import (
	"context"
	"time"

	"boxbook/models"
	"boxbook/utils"
)

// HolidaySource answers whether a date is in the configured holiday set.
type HolidaySource interface {
	IsHoliday(ctx context.Context, date string) (bool, error)
}

// OverrideSource loads the day override for a date, nil when none exists.
type OverrideSource interface {
	Get(ctx context.Context, date string) (*models.DayOverride, error)
}

// Catalog maps dates to their bookable slots, applying the holiday set and
// any per-date override on top of the static templates.
type Catalog struct {
	holidays  HolidaySource
	overrides OverrideSource
}

func NewCatalog(holidays HolidaySource, overrides OverrideSource) *Catalog {
	return &Catalog{holidays: holidays, overrides: overrides}
}

// SlotsFor returns the ordered slot list for a date: empty on Sundays and
// holidays, the Saturday template on Saturdays, the weekday template
// otherwise.
func (c *Catalog) SlotsFor(ctx context.Context, day time.Time) ([]models.ClassSlot, error) {
	if day.Weekday() == time.Sunday {
		return nil, nil
	}
	holiday, err := c.holidays.IsHoliday(ctx, utils.DateKey(day))
	if err != nil {
		return nil, err
	}
	if holiday {
		return nil, nil
	}
	if day.Weekday() == time.Saturday {
		return saturdaySlots, nil
	}
	return weekdaySlots, nil
}

// SlotByTime looks up the template slot scheduled at an HH:MM time on a
// date. Returns nil when the date is closed or no slot runs at that time.
func (c *Catalog) SlotByTime(ctx context.Context, day time.Time, slotTime string) (*models.ClassSlot, error) {
	slots, err := c.SlotsFor(ctx, day)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].Time == slotTime {
			return &slots[i], nil
		}
	}
	return nil, nil
}

// EffectiveCapacity returns the day override's capacity when one is set,
// otherwise the global default.
func (c *Catalog) EffectiveCapacity(ctx context.Context, date string) (int, error) {
	override, err := c.overrides.Get(ctx, date)
	if err != nil {
		return 0, err
	}
	if override != nil && override.Capacity > 0 {
		return override.Capacity, nil
	}
	return DefaultCapacity, nil
}

// IsSlotEnabled returns the override's enabled flag for the slot when an
// override defines one, otherwise true.
func (c *Catalog) IsSlotEnabled(ctx context.Context, date, slotID string) (bool, error) {
	override, err := c.overrides.Get(ctx, date)
	if err != nil {
		return false, err
	}
	if override == nil || override.EnabledSlots == nil {
		return true, nil
	}
	enabled, present := override.EnabledSlots[slotID]
	if !present {
		return true, nil
	}
	return enabled, nil
}

// TrainerFor returns the trainer assigned to a slot on a date, "" when none.
func (c *Catalog) TrainerFor(ctx context.Context, date, slotID string) (string, error) {
	override, err := c.overrides.Get(ctx, date)
	if err != nil {
		return "", err
	}
	if override == nil {
		return "", nil
	}
	return override.Trainers[slotID], nil
}

// IsTrainingDay reports whether any classes run on a date (not Sunday, not
// a holiday).
func (c *Catalog) IsTrainingDay(ctx context.Context, day time.Time) (bool, error) {
	slots, err := c.SlotsFor(ctx, day)
	if err != nil {
		return false, err
	}
	return len(slots) > 0, nil
}

// EffectiveDays counts the possible training days in [from, to] inclusive.
func (c *Catalog) EffectiveDays(ctx context.Context, from, to time.Time) (int, error) {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		ok, err := c.IsTrainingDay(ctx, d)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// WeekRange returns the Sunday-to-Saturday week containing ref. Sunday is
// the canonical week start for every consistency calculation.
func WeekRange(ref time.Time) (time.Time, time.Time) {
	start := ref.AddDate(0, 0, -int(ref.Weekday()))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last day of the calendar month
// containing ref.
func MonthRange(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 1, -1)
}
