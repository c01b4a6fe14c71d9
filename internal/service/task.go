package service

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/models"
	"github.com/taskenda/taskenda-backend/internal/repository"
)

var (
	// ErrTaskNotFound is returned for a missing task and for a task owned by
	// someone else; the two are indistinguishable to the caller
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTask means the input failed validation
	ErrInvalidTask = errors.New("task title must not be empty")
)

// TaskStore is the persistence surface TaskService needs
type TaskStore interface {
	CreateTask(task *models.Task) error
	ListTasks(ownerID int64, filter repository.TaskFilter) ([]models.Task, error)
	FindTask(ownerID, taskID int64) (*models.Task, error)
	UpdateTask(task *models.Task) error
	SetTaskFinished(ownerID, taskID int64, finished bool) error
	DeleteTask(ownerID, taskID int64) error
}

// TaskService scopes every task operation to the authenticated owner. The
// owner id always comes from validated token claims; client-supplied owner
// fields are never consulted.
type TaskService struct {
	store TaskStore
	log   *logrus.Logger
}

// NewTaskService initializes a new task service
func NewTaskService(store TaskStore, log *logrus.Logger) *TaskService {
	return &TaskService{store: store, log: log}
}

// List returns all tasks of the owner, date ascending
func (s *TaskService) List(ownerID int64) ([]models.Task, error) {
	return s.store.ListTasks(ownerID, repository.FilterAll)
}

// ListFinished returns the owner's finished tasks, date ascending
func (s *TaskService) ListFinished(ownerID int64) ([]models.Task, error) {
	return s.store.ListTasks(ownerID, repository.FilterFinished)
}

// ListUnfinished returns the owner's unfinished tasks, date ascending
func (s *TaskService) ListUnfinished(ownerID int64) ([]models.Task, error) {
	return s.store.ListTasks(ownerID, repository.FilterUnfinished)
}

// ListImportant returns the owner's important tasks, date ascending
func (s *TaskService) ListImportant(ownerID int64) ([]models.Task, error) {
	return s.store.ListTasks(ownerID, repository.FilterImportant)
}

// Create persists a new task with the owner forced to ownerID
func (s *TaskService) Create(ownerID int64, input models.TaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidTask
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Important:   input.Important,
		UserID:      ownerID,
	}
	if err := s.store.CreateTask(task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d created for user %d", task.ID, ownerID)
	return task, nil
}

// Update replaces the content fields of the owner's task
func (s *TaskService) Update(ownerID, taskID int64, input models.TaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidTask
	}

	task, err := s.store.FindTask(ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Date = input.Date
	task.Important = input.Important
	if err := s.store.UpdateTask(task); err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

// ToggleFinished flips the finished flag of the owner's task
func (s *TaskService) ToggleFinished(ownerID, taskID int64) (*models.Task, error) {
	task, err := s.store.FindTask(ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	task.Finished = !task.Finished
	if err := s.store.SetTaskFinished(ownerID, taskID, task.Finished); err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

// Delete removes the owner's task
func (s *TaskService) Delete(ownerID, taskID int64) error {
	if err := s.store.DeleteTask(ownerID, taskID); err != nil {
		return mapNotFound(err)
	}
	s.log.Infof("Task %d deleted for user %d", taskID, ownerID)
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
