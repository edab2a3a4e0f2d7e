package attendance

import (
	"context"
	"sort"
	"sync"

	"boxbook/models"
)

// MemRecords is an in-memory RecordStore for tests.
type MemRecords struct {
	mu      sync.RWMutex
	records map[string]map[string]models.AttendanceRecord // userID -> date -> record
}

func NewMemRecords() *MemRecords {
	return &MemRecords{records: make(map[string]map[string]models.AttendanceRecord)}
}

func (m *MemRecords) Upsert(_ context.Context, rec models.AttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[rec.UserID] == nil {
		m.records[rec.UserID] = make(map[string]models.AttendanceRecord)
	}
	m.records[rec.UserID][rec.Date] = rec
	return nil
}

func (m *MemRecords) History(_ context.Context, userID, from, to string) ([]models.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AttendanceRecord
	for date, rec := range m.records[userID] {
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
