package service

import (
	"context"
	"errors"
	"fmt"
	"hrreminder/internal/application/dto"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/repository"
	appErrors "hrreminder/internal/pkg/errors"
	"hrreminder/internal/pkg/logger"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

type candidateService struct {
	candidateRepo repository.CandidateRepository
	loc           *time.Location
	now           func() time.Time
	log           logger.Logger
}

// NewCandidateService creates a new instance of CandidateService implementation.
// loc interprets interview dates and times, nil means time.Local.
func NewCandidateService(candidateRepo repository.CandidateRepository, loc *time.Location, log logger.Logger) CandidateService {
	if loc == nil {
		loc = time.Local
	}
	return &candidateService{
		candidateRepo: candidateRepo,
		loc:           loc,
		now:           time.Now,
		log:           log,
	}
}

// CreateCandidate creates a new candidate.
func (s *candidateService) CreateCandidate(ctx context.Context, req dto.CreateCandidateRequest) (uint, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", appErrors.ErrInvalidRequest)
	}
	status := constant.CandidateApplied
	if req.Status != "" {
		status = constant.CandidateStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return 0, fmt.Errorf("%w: unknown status %q", appErrors.ErrInvalidRequest, req.Status)
		}
	}

	candidate := &entity.Candidate{
		Name:  name,
		JobID: strings.TrimSpace(req.JobID),
	}
	candidate.SetStatus(status)

	id, err := s.candidateRepo.Create(ctx, candidate)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create candidate %q", name), err)
		return 0, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created candidate %d (%s)", id, name))
	return id, nil
}

// GetCandidate retrieves a candidate with its interview.
func (s *candidateService) GetCandidate(ctx context.Context, candidateID uint) (*entity.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, s.mapNotFound(err, appErrors.ErrCandidateNotFound, fmt.Sprintf("Failed to get candidate %d", candidateID))
	}
	return candidate, nil
}

// ListCandidates retrieves every non-archived candidate.
func (s *candidateService) ListCandidates(ctx context.Context) ([]*entity.Candidate, error) {
	candidates, err := s.candidateRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list candidates", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return candidates, nil
}

// ScheduleInterview schedules or reschedules the interview of one candidate.
func (s *candidateService) ScheduleInterview(ctx context.Context, candidateID uint, req dto.InterviewRequest) error {
	interview, err := s.toInterview(req)
	if err != nil {
		return err
	}
	if err := s.candidateRepo.ScheduleInterviews(ctx, []uint{candidateID}, interview, constant.CandidateApproved); err != nil {
		return s.mapNotFound(err, appErrors.ErrCandidateNotFound, fmt.Sprintf("Failed to schedule interview for candidate %d", candidateID))
	}
	s.log.Info(fmt.Sprintf("Scheduled interview for candidate %d at %s %s", candidateID, interview.Date, interview.Time))
	return nil
}

// BulkScheduleInterviews schedules the same interview for several candidates in one transaction.
func (s *candidateService) BulkScheduleInterviews(ctx context.Context, req dto.BulkScheduleRequest) error {
	ids, err := requireIDs(req.CandidateIDs)
	if err != nil {
		return err
	}
	interview, err := s.toInterview(req.Interview)
	if err != nil {
		return err
	}
	interview.Notes = ""

	if err := s.candidateRepo.ScheduleInterviews(ctx, ids, interview, constant.CandidateApproved); err != nil {
		return s.mapNotFound(err, appErrors.ErrCandidateNotFound, fmt.Sprintf("Failed to bulk schedule %d interviews", len(ids)))
	}
	s.log.Info(fmt.Sprintf("Scheduled %d interviews at %s %s", len(ids), interview.Date, interview.Time))
	return nil
}

// CancelInterview removes the interview of one candidate.
func (s *candidateService) CancelInterview(ctx context.Context, candidateID uint) error {
	return s.BulkCancelInterviews(ctx, dto.BulkCancelRequest{CandidateIDs: []uint{candidateID}})
}

// BulkCancelInterviews removes the interviews of several candidates.
func (s *candidateService) BulkCancelInterviews(ctx context.Context, req dto.BulkCancelRequest) error {
	ids, err := requireIDs(req.CandidateIDs)
	if err != nil {
		return err
	}
	if err := s.candidateRepo.CancelInterviews(ctx, ids, constant.CandidateApproved); err != nil {
		return s.mapNotFound(err, appErrors.ErrCandidateNotFound, fmt.Sprintf("Failed to cancel %d interviews", len(ids)))
	}
	s.log.Info(fmt.Sprintf("Cancelled interviews for candidates %v", ids))
	return nil
}

// MarkNoShow sets or clears the no-show flag of a candidate's interview.
func (s *candidateService) MarkNoShow(ctx context.Context, candidateID uint, noShow bool) error {
	if err := s.candidateRepo.SetNoShow(ctx, candidateID, noShow); err != nil {
		return s.mapNotFound(err, appErrors.ErrInterviewNotFound, fmt.Sprintf("Failed to update no-show for candidate %d", candidateID))
	}
	s.log.Info(fmt.Sprintf("Set no-show=%t for candidate %d", noShow, candidateID))
	return nil
}

type agendaRow struct {
	item dto.AgendaItem
	at   time.Time
}

// ListInterviews returns the agenda. Upcoming lists interviews dated today or
// later, soonest first. Past lists earlier dates, most recent first.
func (s *candidateService) ListInterviews(ctx context.Context, filter dto.InterviewFilter) ([]dto.AgendaItem, error) {
	mode := filter.Mode
	if mode == "" {
		mode = constant.AgendaUpcoming
	}
	if mode != constant.AgendaUpcoming && mode != constant.AgendaPast {
		return nil, fmt.Errorf("%w: unknown agenda mode %q", appErrors.ErrInvalidRequest, filter.Mode)
	}

	candidates, err := s.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	interviewer := strings.TrimSpace(filter.Interviewer)

	rows := make([]agendaRow, 0, len(candidates))
	for _, c := range candidates {
		iv := c.Interview
		if iv == nil {
			continue
		}
		if filter.JobID != "" && c.JobID != filter.JobID {
			continue
		}
		if interviewer != "" && !iv.HasInterviewer(interviewer) {
			continue
		}
		day, err := time.ParseInLocation(entity.DateLayout, strings.TrimSpace(iv.Date), s.loc)
		if err != nil {
			s.log.Warn(fmt.Sprintf("Skipping interview of candidate %d with malformed date %q", c.ID, iv.Date))
			continue
		}
		if isUpcoming := !day.Before(today); isUpcoming != (mode == constant.AgendaUpcoming) {
			continue
		}

		at := day
		if start, err := iv.StartInstant(s.loc); err == nil {
			at = start
		}
		rows = append(rows, agendaRow{
			item: dto.AgendaItem{
				CandidateID:       c.ID,
				CandidateName:     c.Name,
				JobID:             c.JobID,
				State:             iv.State(now, s.loc),
				InterviewResponse: dto.ToInterviewResponse(iv),
			},
			at: at,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].at.Equal(rows[j].at) {
			if mode == constant.AgendaPast {
				return rows[i].at.After(rows[j].at)
			}
			return rows[i].at.Before(rows[j].at)
		}
		return rows[i].item.CandidateID < rows[j].item.CandidateID
	})

	items := make([]dto.AgendaItem, len(rows))
	for i, r := range rows {
		items[i] = r.item
	}
	return items, nil
}

// toInterview validates req and builds the interview record to store.
func (s *candidateService) toInterview(req dto.InterviewRequest) (entity.Interview, error) {
	interview := entity.Interview{
		Date:     strings.TrimSpace(req.Date),
		Time:     strings.TrimSpace(req.Time),
		Location: strings.TrimSpace(req.Location),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if _, err := interview.StartInstant(s.loc); err != nil {
		return entity.Interview{}, fmt.Errorf("%w: %v", appErrors.ErrInvalidDateTime, err)
	}
	for _, name := range req.Interviewers {
		if name = strings.TrimSpace(name); name != "" {
			interview.Interviewers = append(interview.Interviewers, name)
		}
	}
	if len(interview.Interviewers) == 0 {
		return entity.Interview{}, fmt.Errorf("%w: at least one interviewer is required", appErrors.ErrInvalidRequest)
	}
	return interview, nil
}

func (s *candidateService) mapNotFound(err error, notFound error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	s.log.Error(msg, err)
	return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
}

func requireIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: candidate_ids must not be empty", appErrors.ErrInvalidRequest)
	}
	return ids, nil
}
