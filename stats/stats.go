// Package stats derives consistency percentages, levels and streaks from a
// user's attendance history and the agenda's effective training days.
package stats

import (
	"context"
	"math"
	"time"

	"boxbook/agenda"
	"boxbook/attendance"
	"boxbook/models"
	"boxbook/utils"
)

// Consistency levels, highest threshold first.
const (
	LevelElite      = "ÉLITE"
	LevelPro        = "PRO"
	LevelConsistent = "CONSISTENTE"
	LevelInitiate   = "INICIADO"
	LevelBeginner   = "PRINCIPIANTE"
)

// Summary is the derived view consumed by dashboards.
type Summary struct {
	Attendances  int    `json:"attendances"`
	PossibleDays int    `json:"possibleDays"`
	Percentage   int    `json:"percentage"`
	Level        string `json:"level"`
	Streak       int    `json:"streak"`
}

type Calculator struct {
	catalog *agenda.Catalog
	records attendance.RecordStore
}

func NewCalculator(catalog *agenda.Catalog, records attendance.RecordStore) *Calculator {
	return &Calculator{catalog: catalog, records: records}
}

// Weekly summarizes the Sunday-to-Saturday week containing ref.
func (c *Calculator) Weekly(ctx context.Context, userID string, ref time.Time) (*Summary, error) {
	from, to := agenda.WeekRange(ref)
	return c.rangeSummary(ctx, userID, from, to)
}

// Monthly summarizes the calendar month containing ref.
func (c *Calculator) Monthly(ctx context.Context, userID string, ref time.Time) (*Summary, error) {
	from, to := agenda.MonthRange(ref)
	return c.rangeSummary(ctx, userID, from, to)
}

func (c *Calculator) rangeSummary(ctx context.Context, userID string, from, to time.Time) (*Summary, error) {
	possible, err := c.catalog.EffectiveDays(ctx, from, to)
	if err != nil {
		return nil, err
	}

	inRange, err := c.records.History(ctx, userID, utils.DateKey(from), utils.DateKey(to))
	if err != nil {
		return nil, err
	}
	attendances := 0
	for _, rec := range inRange {
		if rec.Attended {
			attendances++
		}
	}

	// Streak scans the full history, not just the window.
	all, err := c.records.History(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}

	pct := Percentage(attendances, possible)
	return &Summary{
		Attendances:  attendances,
		PossibleDays: possible,
		Percentage:   pct,
		Level:        LevelFor(pct),
		Streak:       Streak(all),
	}, nil
}

// Percentage is round(100 * attendances / possibleDays), 0 when no days
// were possible.
func Percentage(attendances, possibleDays int) int {
	if possibleDays == 0 {
		return 0
	}
	return int(math.Round(100 * float64(attendances) / float64(possibleDays)))
}

// LevelFor maps a consistency percentage to its level, highest first.
func LevelFor(percentage int) string {
	switch {
	case percentage >= 85:
		return LevelElite
	case percentage >= 70:
		return LevelPro
	case percentage >= 50:
		return LevelConsistent
	case percentage >= 25:
		return LevelInitiate
	default:
		return LevelBeginner
	}
}

// Streak counts consecutive attended calendar days scanning records sorted
// by date descending. It breaks on the first gap larger than one day or the
// first non-attended record.
func Streak(records []models.AttendanceRecord) int {
	streak := 0
	var last time.Time
	for _, rec := range records {
		if !rec.Attended {
			break
		}
		day, err := utils.ParseDate(rec.Date)
		if err != nil {
			break
		}
		if streak == 0 {
			streak = 1
			last = day
			continue
		}
		if int(last.Sub(day).Hours()/24) == 1 {
			streak++
			last = day
			continue
		}
		break
	}
	return streak
}
