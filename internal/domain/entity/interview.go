package entity

import (
	"fmt"
	"hrreminder/internal/domain/constant"
	"strings"
	"time"
)

// Date and time layouts accepted for interview records.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeLayoutSeconds = "15:04:05"
)

// Interview is the interview record attached to at most one candidate.
// Date and Time are kept as entered (local wall clock), the instant is derived on demand.
type Interview struct {
	ID           uint     `gorm:"primaryKey;autoIncrement"`
	CandidateID  uint     `gorm:"column:candidate_id;uniqueIndex;not null"`
	Date         string   `gorm:"column:date;not null"`
	Time         string   `gorm:"column:time;not null"`
	Location     string   `gorm:"column:location"`
	Interviewers []string `gorm:"column:interviewers;type:text;serializer:json"`
	Notes        string   `gorm:"column:notes;type:text"`
	NoShow       bool     `gorm:"column:no_show"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Interview entity.
func (Interview) TableName() string {
	return "interviews"
}

// StartInstant combines Date and Time into an instant in loc.
func (i *Interview) StartInstant(loc *time.Location) (time.Time, error) {
	if i == nil {
		return time.Time{}, fmt.Errorf("no interview")
	}
	if loc == nil {
		loc = time.Local
	}
	date := strings.TrimSpace(i.Date)
	clock := strings.TrimSpace(i.Time)
	for _, layout := range []string{TimeLayout, TimeLayoutSeconds} {
		t, err := time.ParseInLocation(DateLayout+"T"+layout, date+"T"+clock, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable interview start %q %q", i.Date, i.Time)
}

// State derives the agenda state of the interview at now.
func (i *Interview) State(now time.Time, loc *time.Location) constant.InterviewState {
	if i.NoShow {
		return constant.InterviewNoShow
	}
	start, err := i.StartInstant(loc)
	if err == nil && now.After(start) {
		return constant.InterviewCompleted
	}
	return constant.InterviewScheduled
}

// HasInterviewer reports whether name is on the interviewer list.
func (i *Interview) HasInterviewer(name string) bool {
	for _, n := range i.Interviewers {
		if n == name {
			return true
		}
	}
	return false
}
