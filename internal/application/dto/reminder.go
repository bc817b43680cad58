package dto

import (
	"hrreminder/internal/domain/reminder"
	"time"
)

// ReminderResponse is the DTO for the reminder currently presented to a session.
type ReminderResponse struct {
	Key           string    `json:"key"`
	Kind          string    `json:"kind"`
	CandidateID   uint      `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	MinutesBefore int       `json:"minutes_before"`
	StartsAt      time.Time `json:"starts_at"`
	FiredAt       time.Time `json:"fired_at"`
	Location      string    `json:"location,omitempty"`
	Interviewers  []string  `json:"interviewers,omitempty"`
}

// ToReminderResponse converts a reminder.ActiveReminder to a ReminderResponse DTO.
func ToReminderResponse(r reminder.ActiveReminder) ReminderResponse {
	resp := ReminderResponse{
		Key:           r.Key.String(),
		Kind:          string(r.Kind),
		CandidateID:   r.Candidate.ID,
		CandidateName: r.Candidate.Name,
		MinutesBefore: int(r.Key.Bucket / time.Minute),
		StartsAt:      r.StartsAt,
		FiredAt:       r.FiredAt,
	}
	if iv := r.Candidate.Interview; iv != nil {
		resp.Location = iv.Location
		resp.Interviewers = iv.Interviewers
	}
	return resp
}

// DismissResponse reports whether a dismissal cleared a presented reminder.
type DismissResponse struct {
	Dismissed bool `json:"dismissed"`
}
