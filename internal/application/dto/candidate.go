package dto

import (
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
)

// CreateCandidateRequest is the DTO for creating a new candidate.
type CreateCandidateRequest struct {
	Name   string `json:"name"`
	JobID  string `json:"job_id"`
	Status string `json:"status,omitempty"` // Defaults to "applied"
}

// InterviewRequest carries the details of an interview to schedule.
// Date is YYYY-MM-DD and Time is HH:MM or HH:MM:SS, both local wall clock.
type InterviewRequest struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Interviewers []string `json:"interviewers"`
	Notes        string   `json:"notes"`
}

// BulkScheduleRequest schedules the same interview for several candidates.
type BulkScheduleRequest struct {
	CandidateIDs []uint           `json:"candidate_ids"`
	Interview    InterviewRequest `json:"interview"`
}

// BulkCancelRequest cancels the interviews of several candidates.
type BulkCancelRequest struct {
	CandidateIDs []uint `json:"candidate_ids"`
}

// NoShowRequest sets or clears the no-show flag.
type NoShowRequest struct {
	NoShow bool `json:"no_show"`
}

// InterviewFilter narrows the agenda.
type InterviewFilter struct {
	Mode        constant.AgendaMode
	JobID       string
	Interviewer string
}

// InterviewResponse is the DTO for an interview record.
type InterviewResponse struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Interviewers []string `json:"interviewers"`
	Notes        string   `json:"notes,omitempty"`
	NoShow       bool     `json:"no_show"`
}

// CandidateResponse is the DTO for sending candidate information to the client.
type CandidateResponse struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	JobID      string             `json:"job_id"`
	Status     string             `json:"status"`
	IsArchived bool               `json:"is_archived"`
	Interview  *InterviewResponse `json:"interview,omitempty"`
}

// AgendaItem is one row of the interview agenda.
type AgendaItem struct {
	CandidateID   uint                    `json:"candidate_id"`
	CandidateName string                  `json:"candidate_name"`
	JobID         string                  `json:"job_id"`
	State         constant.InterviewState `json:"state"`
	InterviewResponse
}

// ToInterviewResponse converts an entity.Interview to an InterviewResponse DTO.
func ToInterviewResponse(iv *entity.Interview) InterviewResponse {
	return InterviewResponse{
		Date:         iv.Date,
		Time:         iv.Time,
		Location:     iv.Location,
		Interviewers: iv.Interviewers,
		Notes:        iv.Notes,
		NoShow:       iv.NoShow,
	}
}

// ToCandidateResponse converts an entity.Candidate to a CandidateResponse DTO.
func ToCandidateResponse(c *entity.Candidate) CandidateResponse {
	resp := CandidateResponse{
		ID:         c.ID,
		Name:       c.Name,
		JobID:      c.JobID,
		Status:     c.Status,
		IsArchived: c.IsArchived,
	}
	if c.Interview != nil {
		iv := ToInterviewResponse(c.Interview)
		resp.Interview = &iv
	}
	return resp
}

// ToCandidateResponseList converts a slice of entity.Candidate to a slice of CandidateResponse DTOs.
func ToCandidateResponseList(candidates []*entity.Candidate) []CandidateResponse {
	list := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		list[i] = ToCandidateResponse(c)
	}
	return list
}
