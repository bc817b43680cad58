package router

import (
	"fmt"
	"hrreminder/internal/interfaces/api/handler"
	"hrreminder/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	SessionHandler   *handler.SessionHandler
	CandidateHandler *handler.CandidateHandler
	Logger           logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	sessions := api.Group("/sessions")
	sessions.POST("", cfg.SessionHandler.Login)
	sessions.GET("/:id", cfg.SessionHandler.GetSession)
	sessions.DELETE("/:id", cfg.SessionHandler.Logout)
	sessions.GET("/:id/reminder", cfg.SessionHandler.GetReminder)
	sessions.DELETE("/:id/reminder", cfg.SessionHandler.DismissReminder)

	candidates := api.Group("/candidates")
	candidates.POST("", cfg.CandidateHandler.CreateCandidate)
	candidates.GET("", cfg.CandidateHandler.ListCandidates)
	candidates.GET("/:id", cfg.CandidateHandler.GetCandidate)
	candidates.PUT("/:id/interview", cfg.CandidateHandler.ScheduleInterview)
	candidates.DELETE("/:id/interview", cfg.CandidateHandler.CancelInterview)
	candidates.POST("/:id/interview/no-show", cfg.CandidateHandler.MarkNoShow)

	interviews := api.Group("/interviews")
	interviews.GET("", cfg.CandidateHandler.ListInterviews)
	interviews.POST("/bulk", cfg.CandidateHandler.BulkSchedule)
	interviews.POST("/bulk-cancel", cfg.CandidateHandler.BulkCancel)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
