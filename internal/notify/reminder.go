package notify

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/repository"
)

// DueTaskLister is the store surface the reminder job needs
type DueTaskLister interface {
	ListDueTasks(dayStart, dayEnd time.Time) ([]repository.DueTask, error)
}

// ReminderSender delivers one reminder email to a task owner
type ReminderSender interface {
	SendTaskReminder(to, username string, tasks []repository.DueTask) error
}

// Reminder finds unfinished important tasks due today and emails their
// owners. Run from a cron schedule; failures are logged and never fatal.
type Reminder struct {
	store  DueTaskLister
	sender ReminderSender
	logger *logrus.Logger
}

// NewReminder creates a new reminder job
func NewReminder(store DueTaskLister, sender ReminderSender, logger *logrus.Logger) *Reminder {
	return &Reminder{store: store, sender: sender, logger: logger}
}

// Run executes one reminder pass over today's due tasks
func (r *Reminder) Run() {
	dayStart := time.Now().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	due, err := r.store.ListDueTasks(dayStart, dayEnd)
	if err != nil {
		r.logger.Errorf("Failed to list due tasks: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	// Rows arrive grouped by owner; send one email per owner
	var batch []repository.DueTask
	for i, d := range due {
		batch = append(batch, d)
		last := i == len(due)-1
		if last || due[i+1].Email != d.Email {
			if err := r.sender.SendTaskReminder(d.Email, d.Username, batch); err != nil {
				r.logger.Errorf("Reminder for %s failed: %v", d.Username, err)
			}
			batch = nil
		}
	}
}
