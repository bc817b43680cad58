package handler

import (
	"hrreminder/internal/application/dto"
	"hrreminder/internal/application/service"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CandidateHandler handles the candidate roster and interview scheduling.
type CandidateHandler struct {
	candidateService service.CandidateService
	log              logger.Logger
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(candidateService service.CandidateService, log logger.Logger) *CandidateHandler {
	return &CandidateHandler{
		candidateService: candidateService,
		log:              log,
	}
}

// CreateCandidate creates a candidate and returns it.
func (h *CandidateHandler) CreateCandidate(c echo.Context) error {
	ctx := c.Request().Context()
	var req dto.CreateCandidateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	id, err := h.candidateService.CreateCandidate(ctx, req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	candidate, err := h.candidateService.GetCandidate(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto.ToCandidateResponse(candidate))
}

// ListCandidates lists every non-archived candidate.
func (h *CandidateHandler) ListCandidates(c echo.Context) error {
	candidates, err := h.candidateService.ListCandidates(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.ToCandidateResponseList(candidates))
}

// GetCandidate returns one candidate with its interview.
func (h *CandidateHandler) GetCandidate(c echo.Context) error {
	id, err := candidateIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	candidate, err := h.candidateService.GetCandidate(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.ToCandidateResponse(candidate))
}

// ScheduleInterview schedules or reschedules a candidate's interview.
func (h *CandidateHandler) ScheduleInterview(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := candidateIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.InterviewRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.candidateService.ScheduleInterview(ctx, id, req); err != nil {
		return respondError(c, h.log, err)
	}
	candidate, err := h.candidateService.GetCandidate(ctx, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.ToCandidateResponse(candidate))
}

// CancelInterview removes a candidate's interview.
func (h *CandidateHandler) CancelInterview(c echo.Context) error {
	id, err := candidateIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.candidateService.CancelInterview(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkNoShow sets or clears the no-show flag.
func (h *CandidateHandler) MarkNoShow(c echo.Context) error {
	id, err := candidateIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.NoShowRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.candidateService.MarkNoShow(c.Request().Context(), id, req.NoShow); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkSchedule schedules the same interview for several candidates.
func (h *CandidateHandler) BulkSchedule(c echo.Context) error {
	var req dto.BulkScheduleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.candidateService.BulkScheduleInterviews(c.Request().Context(), req); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkCancel cancels the interviews of several candidates.
func (h *CandidateHandler) BulkCancel(c echo.Context) error {
	var req dto.BulkCancelRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.candidateService.BulkCancelInterviews(c.Request().Context(), req); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListInterviews returns the agenda: ?mode=upcoming|past&job_id=&interviewer=
func (h *CandidateHandler) ListInterviews(c echo.Context) error {
	filter := dto.InterviewFilter{
		Mode:        constant.AgendaMode(c.QueryParam("mode")),
		JobID:       c.QueryParam("job_id"),
		Interviewer: c.QueryParam("interviewer"),
	}
	items, err := h.candidateService.ListInterviews(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}
