package service

import (
	"context"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService defines the interface for the per-session reminder loops.
type SchedulerService interface {
	// StartSession creates the reminder state of a session and registers its timer.
	// Calling it again for a live session is a no-op.
	StartSession(ctx context.Context, session *entity.Session) error
	// StopSession tears the session's timer down and drops its state. Unknown ids are ignored.
	StopSession(ctx context.Context, sessionID string) error
	// Tick runs one reminder check for the session immediately.
	Tick(ctx context.Context, sessionID string) (reminder.ActiveReminder, bool, error)
	// ActiveReminder returns the reminder currently presented to the session.
	ActiveReminder(sessionID string) (reminder.ActiveReminder, bool, error)
	// DismissReminder clears the session's slot. Returns false if it was empty.
	DismissReminder(sessionID string) (bool, error)
	// Stop stops every session and the underlying scheduler.
	Stop()
}

// JobScheduler is the periodic job runner the reminder loops are registered on.
type JobScheduler interface {
	AddEvery(every time.Duration, cmd func()) (cron.EntryID, error)
	RemoveJob(id cron.EntryID)
	Stop()
}

// ReminderNotifier delivers an emitted reminder outside the process (LINE push).
type ReminderNotifier interface {
	NotifyReminder(ctx context.Context, session *entity.Session, r reminder.ActiveReminder) error
}

// SchedulerConfig holds the tunables of the reminder loops.
type SchedulerConfig struct {
	Reminder     reminder.Config
	PollInterval time.Duration
	// NotifyTimeout bounds a single notifier call. Zero means 10s.
	NotifyTimeout time.Duration
}
