package scheduler

import (
	"fmt"
	"hrreminder/internal/pkg/logger"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages periodic cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	log      logger.Logger
	mu       sync.Mutex // To protect access to job management
	stopOnce sync.Once
}

// NewScheduler creates and starts a cron scheduler. Every job is wrapped so a
// run is skipped while the previous one is still going and a panic is recovered.
// Recover must sit inside SkipIfStillRunning, otherwise a panic leaks the run token
// and the entry is skipped forever.
func NewScheduler(log logger.Logger) *Scheduler {
	cl := cronLogger{z: logger.Zap(log).Sugar().Named("cron")}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
	)
	c.Start()
	log.Info("Cron scheduler started.")
	return &Scheduler{
		cron: c,
		log:  log,
	}
}

// AddEvery adds a job that runs cmd at a fixed interval, starting one interval from now.
// Intervals below one second are rejected, cron rounds them up anyway.
func (s *Scheduler) AddEvery(every time.Duration, cmd func()) (cron.EntryID, error) {
	if every < time.Second {
		return 0, fmt.Errorf("failed to add cron job: interval %s below 1s", every)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.cron.Schedule(cron.Every(every), cron.FuncJob(cmd))
	s.log.Debug(fmt.Sprintf("Added cron job with ID %d, every %s", id, every))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID. A run already in
// progress is not interrupted.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Debug(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Stop stops the cron scheduler and waits for running jobs. Safe to call multiple times.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to complete
		s.log.Info("Cron scheduler stopped.")
	})
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}

// cronLogger adapts zap to cron.Logger. Cron's info chatter goes to debug.
type cronLogger struct {
	z *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.z.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.z.Errorw(msg, append(keysAndValues, "error", err)...)
}
