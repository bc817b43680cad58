package handler

import (
	"errors"
	"fmt"
	appErrors "hrreminder/internal/pkg/errors"
	"hrreminder/internal/pkg/logger"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrCandidateNotFound),
		errors.Is(err, appErrors.ErrInterviewNotFound),
		errors.Is(err, appErrors.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidRequest),
		errors.Is(err, appErrors.ErrInvalidDateTime):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrSessionClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Internal errors are logged and their detail hidden.
func respondError(c echo.Context, log logger.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Request %s %s failed", c.Request().Method, c.Path()), err)
		return c.JSON(status, ErrorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

// bind decodes the request body into req, reporting failures as ErrInvalidRequest.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrInvalidRequest, err)
	}
	return nil
}

func candidateIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid candidate id %q", appErrors.ErrInvalidRequest, c.Param("id"))
	}
	return uint(id), nil
}
