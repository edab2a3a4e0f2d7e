package agenda

import (
	"context"
	"sync"

	"boxbook/models"
)

// StaticHolidays is an in-memory holiday set. Used in tests and as the
// source of the seeded defaults.
type StaticHolidays struct {
	mu    sync.RWMutex
	dates map[string]bool
}

func NewStaticHolidays(dates ...string) *StaticHolidays {
	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[d] = true
	}
	return &StaticHolidays{dates: m}
}

// DefaultHolidays returns the built-in holiday set as a static source.
func DefaultHolidays() *StaticHolidays {
	s := &StaticHolidays{dates: make(map[string]bool, len(defaultHolidays))}
	for _, h := range defaultHolidays {
		s.dates[h.Date] = true
	}
	return s
}

func (s *StaticHolidays) IsHoliday(_ context.Context, date string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dates[date], nil
}

// StaticOverrides is an in-memory override source for tests.
type StaticOverrides struct {
	mu        sync.RWMutex
	overrides map[string]models.DayOverride
}

func NewStaticOverrides() *StaticOverrides {
	return &StaticOverrides{overrides: make(map[string]models.DayOverride)}
}

func (s *StaticOverrides) Get(_ context.Context, date string) (*models.DayOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	override, ok := s.overrides[date]
	if !ok {
		return nil, nil
	}
	return &override, nil
}

func (s *StaticOverrides) Put(_ context.Context, override models.DayOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[override.Date] = override
	return nil
}
