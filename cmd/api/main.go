package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/auth"
	"github.com/taskenda/taskenda-backend/internal/config"
	"github.com/taskenda/taskenda-backend/internal/handler"
	"github.com/taskenda/taskenda-backend/internal/middleware"
	"github.com/taskenda/taskenda-backend/internal/notify"
	"github.com/taskenda/taskenda-backend/internal/repository"
	"github.com/taskenda/taskenda-backend/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	hasher := auth.NewPasswordHasher(cfg.HashWorkers)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenLifetime)
	authSvc := service.NewAuthService(repo, hasher, tokens, logger)
	taskSvc := service.NewTaskService(repo, logger)
	h := handler.NewHandler(authSvc, taskSvc, logger)

	// Setup router
	r := h.Routes(middleware.AuthMiddleware(tokens, repo, logger))

	// Schedule due-task reminders when SMTP is configured
	if cfg.SMTPHost != "" {
		sender := notify.NewSender(cfg, logger)
		reminder := notify.NewReminder(repo, sender, logger)
		c := cron.New()
		if _, err := c.AddJob(cfg.ReminderCron, reminder); err != nil {
			logger.Fatalf("Failed to schedule reminders: %v", err)
		}
		c.Start()
		defer c.Stop()
		logger.Infof("Task reminders scheduled: %s", cfg.ReminderCron)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
