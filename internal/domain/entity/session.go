package entity

import "time"

// Session represents a logged-in HR user for whom interview reminders are running.
type Session struct {
	ID         string    `gorm:"column:session_id;primaryKey"`
	Username   string    `gorm:"column:username;index;not null"`
	LineUserID *string   `gorm:"column:line_user_id"` // Optional: LINE user that also receives pushed reminders
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Session entity.
func (Session) TableName() string {
	return "user_session"
}

// PushTarget returns the LINE user id to push reminders to, if any.
func (s *Session) PushTarget() (string, bool) {
	if s == nil || s.LineUserID == nil || *s.LineUserID == "" {
		return "", false
	}
	return *s.LineUserID, true
}
