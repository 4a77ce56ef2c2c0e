package appointments

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{appts: make(map[string]*Appointment)}
}

// Add stores a copy of the appointment.
func (s *MemoryStore) Add(ctx context.Context, appt *Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *appt
	s.appts[appt.ID] = &cp
	return nil
}

// List returns copies of stored appointments, oldest first.
func (s *MemoryStore) List(ctx context.Context, date string) ([]Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Appointment
	for _, appt := range s.appts {
		if date == "" || appt.AppointmentDate == date {
			out = append(out, *appt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus mutates one record in place.
func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	appt.Status = status
	if stage != "" {
		appt.FollowUpStage = stage
	}
	cp := *appt
	return &cp, nil
}
