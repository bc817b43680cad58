package reminder

import (
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"sync"
	"time"
)

// ActiveReminder is the notification currently presented to the user.
type ActiveReminder struct {
	Candidate entity.Candidate
	Kind      constant.ReminderKind
	Key       Key
	StartsAt  time.Time
	FiredAt   time.Time
}

// Slot holds at most one ActiveReminder. The scheduler occupies it, the
// presentation layer clears it on dismissal.
type Slot struct {
	mu      sync.Mutex
	current *ActiveReminder
}

// NewSlot returns an empty Slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Occupy replaces the current reminder with r.
func (s *Slot) Occupy(r ActiveReminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &r
}

// Clear empties the slot. Returns false if it was already empty.
func (s *Slot) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.current != nil
	s.current = nil
	return was
}

// IsOccupied reports whether a reminder is being presented.
func (s *Slot) IsOccupied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Current returns a copy of the presented reminder.
func (s *Slot) Current() (ActiveReminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ActiveReminder{}, false
	}
	return *s.current, true
}
