package service

import (
	"context"
	"fmt"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
	"hrreminder/internal/domain/repository"
	appErrors "hrreminder/internal/pkg/errors"
	"hrreminder/internal/pkg/logger"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultNotifyTimeout = 10 * time.Second

type schedulerService struct {
	cronScheduler JobScheduler
	candidateRepo repository.CandidateRepository
	notifier      ReminderNotifier // Optional
	cfg           SchedulerConfig
	now           func() time.Time
	log           logger.Logger
	// map[sessionID]*sessionRunner
	runners map[string]*sessionRunner
	mu      sync.Mutex // Protect runners access
}

// sessionRunner owns the reminder state of one logged-in session.
type sessionRunner struct {
	session *entity.Session
	engine  *reminder.Engine
	entryID cron.EntryID

	tickMu   sync.Mutex // Serialises ticks, also guards invalid and reported
	closed   atomic.Bool
	stopOnce sync.Once
	// Last reported malformed date/time per candidate, so the warning is logged once per value.
	invalid map[uint]string
	// Candidates reported malformed during the current tick.
	reported reminder.CandidateSet
}

// forgetValidInterviews drops invalid entries of candidates not reported this tick:
// their date was fixed or their interview is gone.
func (r *sessionRunner) forgetValidInterviews() {
	for id := range r.invalid {
		if !r.reported.Has(id) {
			delete(r.invalid, id)
		}
	}
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
// notifier may be nil.
func NewSchedulerService(
	cronScheduler JobScheduler,
	candidateRepo repository.CandidateRepository,
	notifier ReminderNotifier,
	cfg SchedulerConfig,
	log logger.Logger,
) SchedulerService {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultNotifyTimeout
	}
	return &schedulerService{
		cronScheduler: cronScheduler,
		candidateRepo: candidateRepo,
		notifier:      notifier,
		cfg:           cfg,
		now:           time.Now,
		log:           log,
		runners:       make(map[string]*sessionRunner),
	}
}

// StartSession creates the reminder state of a session and registers its timer.
func (s *schedulerService) StartSession(ctx context.Context, session *entity.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("%w: session id is required", appErrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runners[session.ID]; ok {
		s.log.Debug(fmt.Sprintf("Reminder loop for session %s already running, skipping.", session.ID))
		return nil
	}

	sessionCopy := *session
	r := &sessionRunner{
		session: &sessionCopy,
		invalid: make(map[uint]string),
	}
	r.engine = reminder.NewEngine(s.cfg.Reminder, reminder.NewState(), reminder.NewSlot(), s.invalidHandler(r))

	entryID, err := s.cronScheduler.AddEvery(s.cfg.PollInterval, func() {
		// Use background context for cron job execution
		if _, _, err := s.tick(context.Background(), r); err != nil {
			s.log.Error(fmt.Sprintf("Reminder tick failed for session %s", r.session.ID), err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	r.entryID = entryID
	s.runners[session.ID] = r

	s.log.Info(fmt.Sprintf("Started reminder loop for session %s every %s (Job ID: %d)", session.ID, s.cfg.PollInterval, entryID))
	return nil
}

// StopSession tears the session's timer down exactly once and drops its state.
func (s *schedulerService) StopSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	r, ok := s.runners[sessionID]
	delete(s.runners, sessionID)
	s.mu.Unlock()

	if !ok {
		s.log.Debug(fmt.Sprintf("No reminder loop found for session %s to stop.", sessionID))
		return nil
	}
	s.stopRunner(r)
	return nil
}

func (s *schedulerService) stopRunner(r *sessionRunner) {
	r.stopOnce.Do(func() {
		r.closed.Store(true)
		s.cronScheduler.RemoveJob(r.entryID)

		// Wait for an in-flight tick before dropping state.
		r.tickMu.Lock()
		r.engine.State().Reset()
		r.engine.Slot().Clear()
		r.tickMu.Unlock()

		s.log.Info(fmt.Sprintf("Stopped reminder loop for session %s (Job ID: %d)", r.session.ID, r.entryID))
	})
}

// Tick runs one reminder check for the session immediately.
func (s *schedulerService) Tick(ctx context.Context, sessionID string) (reminder.ActiveReminder, bool, error) {
	r, err := s.runner(sessionID)
	if err != nil {
		return reminder.ActiveReminder{}, false, err
	}
	return s.tick(ctx, r)
}

func (s *schedulerService) tick(ctx context.Context, r *sessionRunner) (reminder.ActiveReminder, bool, error) {
	if !r.tickMu.TryLock() {
		s.log.Debug(fmt.Sprintf("Reminder tick for session %s still running, skipping.", r.session.ID))
		return reminder.ActiveReminder{}, false, nil
	}
	defer r.tickMu.Unlock()

	if r.closed.Load() {
		return reminder.ActiveReminder{}, false, appErrors.ErrSessionClosed
	}

	roster, err := s.candidateRepo.FindWithInterviews(ctx)
	if err != nil {
		return reminder.ActiveReminder{}, false, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	// The session may have ended while the roster was loading.
	if r.closed.Load() {
		return reminder.ActiveReminder{}, false, appErrors.ErrSessionClosed
	}

	r.reported = make(reminder.CandidateSet)
	active, fired := r.engine.Tick(s.now(), roster)
	r.forgetValidInterviews()
	if !fired {
		return reminder.ActiveReminder{}, false, nil
	}

	s.log.Info(fmt.Sprintf("Reminder %s (%s) fired for session %s: candidate %d starts at %s",
		active.Key, active.Kind, r.session.ID, active.Candidate.ID, active.StartsAt.Format(time.RFC3339)))
	s.notify(ctx, r.session, active)
	return active, true, nil
}

// notify delivers the reminder through the notifier. Failures are only logged.
func (s *schedulerService) notify(ctx context.Context, session *entity.Session, active reminder.ActiveReminder) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyReminder(ctx, session, active); err != nil {
		s.log.Error(fmt.Sprintf("Failed to deliver reminder %s for session %s", active.Key, session.ID), err)
	}
}

func (s *schedulerService) invalidHandler(r *sessionRunner) reminder.InvalidFunc {
	return func(c entity.Candidate, err error) {
		var raw string
		if c.Interview != nil {
			raw = c.Interview.Date + " " + c.Interview.Time
		}
		r.reported.Add(c.ID)
		if prev, ok := r.invalid[c.ID]; ok && prev == raw {
			return
		}
		r.invalid[c.ID] = raw
		s.log.Warn(fmt.Sprintf("Skipping interview of candidate %d for session %s: %v", c.ID, r.session.ID, err))
	}
}

// ActiveReminder returns the reminder currently presented to the session.
func (s *schedulerService) ActiveReminder(sessionID string) (reminder.ActiveReminder, bool, error) {
	r, err := s.runner(sessionID)
	if err != nil {
		return reminder.ActiveReminder{}, false, err
	}
	active, ok := r.engine.Slot().Current()
	return active, ok, nil
}

// DismissReminder clears the session's slot.
func (s *schedulerService) DismissReminder(sessionID string) (bool, error) {
	r, err := s.runner(sessionID)
	if err != nil {
		return false, err
	}
	cleared := r.engine.Slot().Clear()
	if cleared {
		s.log.Debug(fmt.Sprintf("Dismissed reminder for session %s", sessionID))
	}
	return cleared, nil
}

func (s *schedulerService) runner(sessionID string) (*sessionRunner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[sessionID]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return r, nil
}

// Stop stops every session and the underlying scheduler.
func (s *schedulerService) Stop() {
	s.mu.Lock()
	runners := make([]*sessionRunner, 0, len(s.runners))
	for id, r := range s.runners {
		runners = append(runners, r)
		delete(s.runners, id)
	}
	s.mu.Unlock()

	for _, r := range runners {
		s.stopRunner(r)
	}
	s.cronScheduler.Stop()
}
