package handler

import (
	"hrreminder/internal/application/dto"
	"hrreminder/internal/application/service"
	"hrreminder/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionHandler handles login, logout and the reminder slot of a session.
type SessionHandler struct {
	sessionService service.SessionService
	log            logger.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		log:            log,
	}
}

// Login opens a session and starts its reminder loop.
func (h *SessionHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	session, err := h.sessionService.Login(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// GetSession returns the session.
func (h *SessionHandler) GetSession(c echo.Context) error {
	session, err := h.sessionService.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// Logout stops the session's reminders and deletes it.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionService.Logout(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReminder returns the reminder presented to the session, or 204 when there is none.
func (h *SessionHandler) GetReminder(c echo.Context) error {
	active, ok, err := h.sessionService.ActiveReminder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, dto.ToReminderResponse(active))
}

// DismissReminder clears the presented reminder.
func (h *SessionHandler) DismissReminder(c echo.Context) error {
	dismissed, err := h.sessionService.DismissReminder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.DismissResponse{Dismissed: dismissed})
}
