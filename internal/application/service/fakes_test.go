package service

import (
	"context"
	"errors"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// fakeJobScheduler records registered jobs and lets tests fire them by hand.
type fakeJobScheduler struct {
	mu      sync.Mutex
	next    cron.EntryID
	jobs    map[cron.EntryID]func()
	every   map[cron.EntryID]time.Duration
	removed []cron.EntryID
	stopped int
	addErr  error
}

func newFakeJobScheduler() *fakeJobScheduler {
	return &fakeJobScheduler{
		jobs:  make(map[cron.EntryID]func()),
		every: make(map[cron.EntryID]time.Duration),
	}
}

func (f *fakeJobScheduler) AddEvery(every time.Duration, cmd func()) (cron.EntryID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.next++
	f.jobs[f.next] = cmd
	f.every[f.next] = every
	return f.next, nil
}

func (f *fakeJobScheduler) RemoveJob(id cron.EntryID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, id)
	f.removed = append(f.removed, id)
}

func (f *fakeJobScheduler) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func (f *fakeJobScheduler) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

func (f *fakeJobScheduler) job(id cron.EntryID) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id]
}

// fakeRoster serves FindWithInterviews from memory. The other methods are unused by the scheduler.
type fakeRoster struct {
	mu        sync.Mutex
	roster    []entity.Candidate
	calls     int
	err       error
	panicNext bool
}

func (f *fakeRoster) set(roster ...entity.Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roster = roster
}

func (f *fakeRoster) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRoster) FindWithInterviews(ctx context.Context) ([]entity.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panicNext {
		f.panicNext = false
		panic("roster unavailable")
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Candidate(nil), f.roster...), nil
}

func (f *fakeRoster) FindByID(ctx context.Context, id uint) (*entity.Candidate, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRoster) FindAll(ctx context.Context) ([]*entity.Candidate, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRoster) Create(ctx context.Context, candidate *entity.Candidate) (uint, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeRoster) ScheduleInterviews(ctx context.Context, candidateIDs []uint, interview entity.Interview, status constant.CandidateStatus) error {
	return errors.New("not implemented")
}

func (f *fakeRoster) CancelInterviews(ctx context.Context, candidateIDs []uint, status constant.CandidateStatus) error {
	return errors.New("not implemented")
}

func (f *fakeRoster) SetNoShow(ctx context.Context, candidateID uint, noShow bool) error {
	return errors.New("not implemented")
}

type notification struct {
	sessionID string
	key       reminder.Key
}

type fakeNotifier struct {
	mu        sync.Mutex
	sent      []notification
	err       error
	panicNext bool
}

func (f *fakeNotifier) NotifyReminder(ctx context.Context, session *entity.Session, r reminder.ActiveReminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{sessionID: session.ID, key: r.Key})
	if f.panicNext {
		f.panicNext = false
		panic("push client crashed")
	}
	return f.err
}

var interviewAt = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func candidateAt(id uint, start time.Time) entity.Candidate {
	return entity.Candidate{
		ID:     id,
		Name:   "Candidate",
		Status: constant.CandidateApproved.String(),
		Interview: &entity.Interview{
			CandidateID:  id,
			Date:         start.Format(entity.DateLayout),
			Time:         start.Format(entity.TimeLayout),
			Interviewers: []string{"ana"},
		},
	}
}
