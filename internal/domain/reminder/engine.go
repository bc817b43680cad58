package reminder

import (
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"time"
)

// Config holds the tunables of the reminder loop.
type Config struct {
	// NowWindow is how long after its start an interview counts as "starting now".
	NowWindow time.Duration
	// Horizon is the furthest lead time that produces an upcoming reminder.
	Horizon time.Duration
	// BucketSize is the granularity of upcoming reminders.
	BucketSize time.Duration
	// Location interprets interview dates and times. Nil means time.Local.
	Location *time.Location
}

// DefaultConfig returns a one minute now window and 5 minute buckets up to 30 minutes out.
func DefaultConfig() Config {
	return Config{
		NowWindow:  time.Minute,
		Horizon:    30 * time.Minute,
		BucketSize: 5 * time.Minute,
		Location:   time.Local,
	}
}

// InvalidFunc receives candidates whose interview start could not be parsed.
type InvalidFunc func(candidate entity.Candidate, err error)

// Engine decides, tick by tick, which reminder to surface. It writes only to
// its State and Slot and never modifies the roster it is given.
type Engine struct {
	cfg       Config
	state     *State
	slot      *Slot
	onInvalid InvalidFunc
}

// NewEngine wires an Engine to the session's state and slot. onInvalid may be nil.
func NewEngine(cfg Config, state *State, slot *Slot, onInvalid InvalidFunc) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Engine{cfg: cfg, state: state, slot: slot, onInvalid: onInvalid}
}

// State returns the engine's reminder state.
func (e *Engine) State() *State {
	return e.state
}

// Slot returns the engine's notification slot.
func (e *Engine) Slot() *Slot {
	return e.slot
}

type scheduledInterview struct {
	candidate entity.Candidate
	start     time.Time
}

// Tick runs one check against roster at now. It returns the reminder that was
// placed in the slot, if any. At most one reminder is emitted per tick.
func (e *Engine) Tick(now time.Time, roster []entity.Candidate) (ActiveReminder, bool) {
	scheduled := e.resolve(roster)
	e.collectGarbage(now, scheduled)

	if r, ok := e.checkStartingNow(now, scheduled); ok {
		return r, true
	}
	return e.checkUpcoming(now, scheduled)
}

func (e *Engine) resolve(roster []entity.Candidate) []scheduledInterview {
	out := make([]scheduledInterview, 0, len(roster))
	for _, c := range roster {
		if c.Interview == nil {
			continue
		}
		start, err := c.Interview.StartInstant(e.cfg.Location)
		if err != nil {
			if e.onInvalid != nil {
				e.onInvalid(c, err)
			}
			continue
		}
		out = append(out, scheduledInterview{candidate: c, start: start})
	}
	return out
}

// collectGarbage keeps the state bounded by the interviews that can still fire.
// No-show interviews still count, their slot stays taken until the time passes.
func (e *Engine) collectGarbage(now time.Time, scheduled []scheduledInterview) {
	upcoming := make(CandidateSet)
	starting := make(CandidateSet)
	for _, s := range scheduled {
		switch {
		case s.start.After(now):
			upcoming.Add(s.candidate.ID)
		case e.withinNowWindow(now, s.start):
			starting.Add(s.candidate.ID)
		}
	}
	e.state.PruneExcept(upcoming, starting)
}

func (e *Engine) withinNowWindow(now, start time.Time) bool {
	since := now.Sub(start)
	return since >= 0 && since < e.cfg.NowWindow
}

func (e *Engine) checkStartingNow(now time.Time, scheduled []scheduledInterview) (ActiveReminder, bool) {
	for _, s := range scheduled {
		if s.candidate.Interview.NoShow || !e.withinNowWindow(now, s.start) {
			continue
		}
		key := NowKey(s.candidate.ID)
		if e.state.HasFired(key) {
			continue
		}
		r := e.emit(now, s, constant.ReminderNow, key)
		return r, true
	}
	return ActiveReminder{}, false
}

func (e *Engine) checkUpcoming(now time.Time, scheduled []scheduledInterview) (ActiveReminder, bool) {
	var next *scheduledInterview
	for i := range scheduled {
		s := &scheduled[i]
		if s.candidate.Interview.NoShow || !s.start.After(now) {
			continue
		}
		if next == nil || s.start.Before(next.start) ||
			(s.start.Equal(next.start) && s.candidate.ID < next.candidate.ID) {
			next = s
		}
	}
	if next == nil {
		return ActiveReminder{}, false
	}

	lead := next.start.Sub(now)
	if lead <= 0 || lead > e.cfg.Horizon {
		return ActiveReminder{}, false
	}
	key := Key{CandidateID: next.candidate.ID, Bucket: BucketFor(lead, e.cfg.BucketSize)}
	if e.state.HasFired(key) || e.slot.IsOccupied() {
		return ActiveReminder{}, false
	}
	return e.emit(now, *next, constant.ReminderUpcoming, key), true
}

func (e *Engine) emit(now time.Time, s scheduledInterview, kind constant.ReminderKind, key Key) ActiveReminder {
	candidate := s.candidate
	interview := *candidate.Interview
	candidate.Interview = &interview

	r := ActiveReminder{
		Candidate: candidate,
		Kind:      kind,
		Key:       key,
		StartsAt:  s.start,
		FiredAt:   now,
	}
	e.slot.Occupy(r)
	e.state.MarkFired(key)
	return r
}
