package service

import (
	"context"
	"hrreminder/internal/application/dto"
	"hrreminder/internal/domain/entity"
)

// CandidateService defines the interface for the candidate roster and interview scheduling.
type CandidateService interface {
	// CreateCandidate creates a new candidate. It returns the ID of the created candidate.
	CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (uint, error)
	// GetCandidate retrieves a candidate with its interview.
	GetCandidate(ctx context.Context, candidateID uint) (*entity.Candidate, error)
	// ListCandidates retrieves every non-archived candidate.
	ListCandidates(ctx context.Context) ([]*entity.Candidate, error)
	// ScheduleInterview schedules or reschedules the interview of one candidate.
	ScheduleInterview(ctx context.Context, candidateID uint, req dto.InterviewRequest) error
	// BulkScheduleInterviews schedules the same interview for several candidates. Notes are not copied.
	BulkScheduleInterviews(ctx context.Context, req dto.BulkScheduleRequest) error
	// CancelInterview removes the interview of one candidate.
	CancelInterview(ctx context.Context, candidateID uint) error
	// BulkCancelInterviews removes the interviews of several candidates.
	BulkCancelInterviews(ctx context.Context, req dto.BulkCancelRequest) error
	// MarkNoShow sets or clears the no-show flag of a candidate's interview.
	MarkNoShow(ctx context.Context, candidateID uint, noShow bool) error
	// ListInterviews returns the agenda matching filter.
	ListInterviews(ctx context.Context, filter dto.InterviewFilter) ([]dto.AgendaItem, error)
}
