package repository

import (
	"context"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
)

// CandidateRepository defines the interface for the candidate roster and its interview records.
type CandidateRepository interface {
	// FindByID retrieves a candidate, with its interview preloaded.
	FindByID(ctx context.Context, id uint) (*entity.Candidate, error)
	// FindAll retrieves every non-archived candidate, with interviews preloaded.
	FindAll(ctx context.Context) ([]*entity.Candidate, error)
	// FindWithInterviews retrieves the candidates that currently carry an interview record.
	FindWithInterviews(ctx context.Context) ([]entity.Candidate, error)
	// Create creates a new candidate. Returns the ID of the created candidate.
	Create(ctx context.Context, candidate *entity.Candidate) (uint, error)
	// ScheduleInterviews replaces the interview of every listed candidate with a copy
	// of interview and sets their status, in one transaction.
	ScheduleInterviews(ctx context.Context, candidateIDs []uint, interview entity.Interview, status constant.CandidateStatus) error
	// CancelInterviews removes the interview of every listed candidate and sets their status.
	CancelInterviews(ctx context.Context, candidateIDs []uint, status constant.CandidateStatus) error
	// SetNoShow updates the no-show flag of a candidate's interview.
	SetNoShow(ctx context.Context, candidateID uint, noShow bool) error
}
