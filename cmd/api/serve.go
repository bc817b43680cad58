package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "hrreminder/internal/application/service"
	"hrreminder/internal/config"
	"hrreminder/internal/domain/reminder"

	// Infrastructure Layer
	"hrreminder/internal/infrastructure/database/sqlite"
	lineClient "hrreminder/internal/infrastructure/line"
	"hrreminder/internal/infrastructure/scheduler"

	// Interfaces Layer
	"hrreminder/internal/interfaces/api/handler"
	"hrreminder/internal/interfaces/api/router"

	// Packages
	appErrors "hrreminder/internal/pkg/errors"
	appLogger "hrreminder/internal/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder loops",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default 8080, or PORT)")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, db *gorm.DB, timeout time.Duration, appLog appLogger.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	appLog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// Stop the reminder loops first so no tick reads a closing database
	appLog.Info("Stopping scheduler...")
	schedulerService.Stop()
	appLog.Info("Scheduler stopped.")

	// Shutdown HTTP server
	// The context is used to inform the server it has `timeout` to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", err)
	}

	// Close database connection
	appLog.Info("Closing database connection...")
	if err := sqlite.CloseDB(db); err != nil {
		appLog.Error("Error closing database", err)
	} else {
		appLog.Info("Database connection closed.")
	}

	appLog.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func serve() error {
	// --- Initialization ---
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("🔴 ERROR: %v", err)
		return err
	}

	appLog, err := appLogger.New(appLogger.Options{JSON: cfg.LogJSON, Debug: cfg.LogDebug})
	if err != nil {
		log.Printf("🔴 ERROR: creating a logger: %v", err)
		return err
	}
	defer appLogger.Sync(appLog)
	appLog.Info("Logger initialized.")

	loc, err := cfg.Reminder.Location()
	if err != nil {
		appLog.Error("Invalid reminder time zone", err)
		return err
	}

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DatabaseURL, cfg.DatabaseLog)
	if err != nil {
		appLog.Error("Failed to open database", err)
		return err
	}
	candidateRepo := sqlite.NewCandidateRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	appLog.Info(fmt.Sprintf("Database %s and repositories initialized.", cfg.DatabaseURL))

	cronScheduler := scheduler.NewScheduler(appLog)
	notifier := newNotifier(cfg.Line, appLog)

	// --- Application Services ---
	schedulerSvc := appService.NewSchedulerService(cronScheduler, candidateRepo, notifier, appService.SchedulerConfig{
		Reminder: reminder.Config{
			NowWindow:  cfg.Reminder.NowWindow,
			Horizon:    cfg.Reminder.Horizon,
			BucketSize: cfg.Reminder.BucketSize,
			Location:   loc,
		},
		PollInterval: cfg.Reminder.PollInterval,
	}, appLog)
	sessionSvc := appService.NewSessionService(sessionRepo, schedulerSvc, appLog)
	candidateSvc := appService.NewCandidateService(candidateRepo, loc, appLog)
	appLog.Info("Application services initialized.")

	// --- Initialize Sessions ---
	if err := sessionSvc.InitializeSessions(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize sessions on startup", err)
	}

	// --- API Handlers ---
	routerCfg := &router.Config{
		SessionHandler:   handler.NewSessionHandler(sessionSvc, appLog),
		CandidateHandler: handler.NewCandidateHandler(candidateSvc, appLog),
		Logger:           appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, db, cfg.ShutdownTimeout, appLog, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d (reminders every %s, time zone %s)", cfg.Port, cfg.Reminder.PollInterval, loc))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.Error("HTTP server ListenAndServe error", err)
		schedulerSvc.Stop()
		_ = sqlite.CloseDB(db)
		return err
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
	return nil
}

// newNotifier returns the LINE push notifier, or nil when LINE is not configured.
func newNotifier(cfg config.LineConfig, appLog appLogger.Logger) appService.ReminderNotifier {
	client, err := lineClient.NewClient(cfg, appLog)
	switch {
	case err == nil:
		return client
	case errors.Is(err, appErrors.ErrLineDisabled):
		appLog.Info("LINE credentials not set, reminders are delivered over HTTP only.")
	default:
		appLog.Error("Failed to create LINE client, push delivery disabled", err)
	}
	return nil
}
