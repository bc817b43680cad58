package service

import (
	"context"
	"errors"
	"fmt"
	"hrreminder/internal/application/dto"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
	"hrreminder/internal/domain/repository"
	appErrors "hrreminder/internal/pkg/errors"
	"hrreminder/internal/pkg/logger"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionService struct {
	sessionRepo  repository.SessionRepository
	schedulerSvc SchedulerService
	log          logger.Logger
}

// NewSessionService creates a new instance of SessionService implementation.
func NewSessionService(sessionRepo repository.SessionRepository, schedulerSvc SchedulerService, log logger.Logger) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		schedulerSvc: schedulerSvc,
		log:          log,
	}
}

// Login persists a new session and starts its reminder loop.
func (s *sessionService) Login(ctx context.Context, req dto.LoginRequest) (*entity.Session, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", appErrors.ErrInvalidRequest)
	}
	session := &entity.Session{
		ID:       uuid.NewString(),
		Username: username,
	}
	if req.LineUserID != nil {
		if lineUserID := strings.TrimSpace(*req.LineUserID); lineUserID != "" {
			session.LineUserID = &lineUserID
		}
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create session for %s", username), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.schedulerSvc.StartSession(ctx, session); err != nil {
		s.log.Error(fmt.Sprintf("Failed to start reminders for session %s", session.ID), err)
		// Roll back so a session never exists without its loop.
		if delErr := s.sessionRepo.Delete(ctx, session.ID); delErr != nil {
			s.log.Error(fmt.Sprintf("Failed to delete session %s after scheduling error", session.ID), delErr)
		}
		return nil, err
	}

	s.log.Info(fmt.Sprintf("User %s logged in with session %s", username, session.ID))
	return session, nil
}

// Logout stops the session's reminder loop and deletes the session.
func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}

	// Stop the timer first so no tick runs against a deleted session.
	if err := s.schedulerSvc.StopSession(ctx, sessionID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to stop reminders for session %s", sessionID), err)
		return err
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete session %s", sessionID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Session %s logged out.", sessionID))
	return nil
}

// GetSession retrieves a session by its ID.
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrSessionNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get session %s", sessionID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return session, nil
}

// ActiveReminder returns the reminder currently presented to the session, if any.
func (s *sessionService) ActiveReminder(ctx context.Context, sessionID string) (reminder.ActiveReminder, bool, error) {
	return s.schedulerSvc.ActiveReminder(sessionID)
}

// DismissReminder clears the presented reminder.
func (s *sessionService) DismissReminder(ctx context.Context, sessionID string) (bool, error) {
	return s.schedulerSvc.DismissReminder(sessionID)
}

// InitializeSessions removes sessions left behind by a previous process.
// Reminder state lives in memory only, so those sessions cannot be resumed.
func (s *sessionService) InitializeSessions(ctx context.Context) error {
	s.log.Info("Clearing sessions from previous run...")
	n, err := s.sessionRepo.DeleteAll(ctx)
	if err != nil {
		s.log.Error("Failed to clear stale sessions", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Session initialization complete. Deleted stale: %d", n))
	return nil
}
