package repository

import (
	"context"
	"hrreminder/internal/domain/entity"
)

// SessionRepository defines the interface for logged-in session records.
type SessionRepository interface {
	// FindByID retrieves a session by its ID.
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	// Create creates a new session.
	Create(ctx context.Context, session *entity.Session) error
	// Delete deletes a session by its ID.
	Delete(ctx context.Context, id string) error
	// DeleteAll deletes every session (used on startup, reminder state does not survive restarts).
	DeleteAll(ctx context.Context) (int64, error)
}
