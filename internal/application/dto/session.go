package dto

import (
	"hrreminder/internal/domain/entity"
	"time"
)

// LoginRequest is the DTO for opening a session.
type LoginRequest struct {
	Username   string  `json:"username"`
	LineUserID *string `json:"line_user_id,omitempty"` // Optional: also push reminders to this LINE user
}

// SessionResponse is the DTO for sending session information to the client.
type SessionResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	LineUserID *string   `json:"line_user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToSessionResponse converts an entity.Session to a SessionResponse DTO.
func ToSessionResponse(s *entity.Session) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		Username:   s.Username,
		LineUserID: s.LineUserID,
		CreatedAt:  s.CreatedAt,
	}
}
