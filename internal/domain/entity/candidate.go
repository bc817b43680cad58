package entity

import (
	"hrreminder/internal/domain/constant"
	"time"
)

// Candidate represents a person in the hiring pipeline. Only the fields the
// interview tooling needs are modelled here.
type Candidate struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	Name       string     `gorm:"column:name;not null"`
	JobID      string     `gorm:"column:job_id;index"`
	Status     string     `gorm:"column:status;not null"`
	IsArchived bool       `gorm:"column:is_archived"`
	Interview  *Interview `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Candidate entity.
func (Candidate) TableName() string {
	return "candidates"
}

// GetStatus returns the status as a CandidateStatus.
func (c *Candidate) GetStatus() constant.CandidateStatus {
	return constant.CandidateStatus(c.Status)
}

// SetStatus sets the candidate status.
func (c *Candidate) SetStatus(status constant.CandidateStatus) {
	c.Status = status.String()
}

// HasInterview reports whether an interview record is attached.
func (c *Candidate) HasInterview() bool {
	return c != nil && c.Interview != nil
}
