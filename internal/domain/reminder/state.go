package reminder

import "sort"

// CandidateSet is a set of candidate ids.
type CandidateSet map[uint]struct{}

// Add inserts id into the set.
func (s CandidateSet) Add(id uint) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s CandidateSet) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// State remembers which reminders already fired during a session.
// It is owned by a single session runner and is not safe for concurrent use.
type State struct {
	fired map[Key]struct{}
}

// NewState returns an empty State.
func NewState() *State {
	return &State{fired: make(map[Key]struct{})}
}

// HasFired reports whether k already fired.
func (s *State) HasFired(k Key) bool {
	_, ok := s.fired[k]
	return ok
}

// MarkFired records that k fired.
func (s *State) MarkFired(k Key) {
	s.fired[k] = struct{}{}
}

// PruneExcept drops every key whose candidate no longer has a relevant interview.
// A bucketed key survives while its candidate is in upcoming. The "now" key also
// survives while its candidate is in starting, so it cannot fire twice within the
// now window. Returns the number of keys removed.
func (s *State) PruneExcept(upcoming, starting CandidateSet) int {
	removed := 0
	for k := range s.fired {
		if upcoming.Has(k.CandidateID) {
			continue
		}
		if k.IsNow() && starting.Has(k.CandidateID) {
			continue
		}
		delete(s.fired, k)
		removed++
	}
	return removed
}

// Len returns the number of fired keys currently retained.
func (s *State) Len() int {
	return len(s.fired)
}

// Keys returns the retained keys ordered by candidate then bucket.
func (s *State) Keys() []Key {
	keys := make([]Key, 0, len(s.fired))
	for k := range s.fired {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CandidateID != keys[j].CandidateID {
			return keys[i].CandidateID < keys[j].CandidateID
		}
		return keys[i].Bucket < keys[j].Bucket
	})
	return keys
}

// Reset forgets every fired key.
func (s *State) Reset() {
	s.fired = make(map[Key]struct{})
}
