package service

import (
	"context"
	"hrreminder/internal/application/dto"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
)

// SessionService defines the interface for login/logout and the reminder slot of a session.
type SessionService interface {
	// Login persists a new session and starts its reminder loop.
	Login(ctx context.Context, req dto.LoginRequest) (*entity.Session, error)
	// Logout stops the session's reminder loop and deletes the session.
	Logout(ctx context.Context, sessionID string) error
	// GetSession retrieves a session by its ID.
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	// ActiveReminder returns the reminder currently presented to the session, if any.
	ActiveReminder(ctx context.Context, sessionID string) (reminder.ActiveReminder, bool, error)
	// DismissReminder clears the presented reminder. Returns false if there was none.
	DismissReminder(ctx context.Context, sessionID string) (bool, error)
	// InitializeSessions removes sessions left behind by a previous process.
	InitializeSessions(ctx context.Context) error
}
