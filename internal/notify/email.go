package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/config"
	"github.com/taskenda/taskenda-backend/internal/repository"
)

// Sender delivers task reminder emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendTaskReminder emails a user about tasks of theirs due today
func (s *Sender) SendTaskReminder(to, username string, tasks []repository.DueTask) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Tasks due today"

	body := fmt.Sprintf("Dear %s,\n\nThe following important tasks are due today:\n\n", username)
	for _, t := range tasks {
		body += fmt.Sprintf("  - %s (due %s)\n", t.Title, t.Date.Format("2006-01-02 15:04"))
	}
	body += "\nBest regards,\nTaskenda"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send reminder to %s: %v", to, err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Infof("Reminder sent to %s (%d tasks)", to, len(tasks))
	return nil
}
