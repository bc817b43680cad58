package sqlite

import (
	"context"
	"errors"
	"fmt"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// FindByID retrieves a session by its ID.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var session entity.Session
	if err := r.db.WithContext(ctx).Where("session_id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session with ID %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find session by id %s: %w", id, err)
	}
	return &session, nil
}

// Create creates a new session.
func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.ID, err)
	}
	return nil
}

// Delete deletes a session by its ID.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&entity.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// DeleteAll deletes every session.
func (r *sessionRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
