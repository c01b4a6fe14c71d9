package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/taskenda/taskenda-backend/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// postgres unique_violation
const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database. The unique constraints on
// username and email are the authoritative duplicate guard; a violation is
// surfaced as ErrDuplicate.
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, firstname, lastname, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash,
		user.Firstname, user.Lastname, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	return r.findUser("username", username)
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	return r.findUser("email", email)
}

func (r *Repository) findUser(column, value string) (*models.User, error) {
	user := &models.User{}
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, firstname, lastname, role, created_at
		FROM users
		WHERE %s = $1`, column)
	err := r.db.QueryRow(query, value).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.Firstname, &user.Lastname, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateTask creates a new task in the database
func (r *Repository) CreateTask(task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, date, finished, important, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(query, task.Title, task.Description, task.Date,
		task.Finished, task.Important, task.UserID).
		Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// TaskFilter narrows task listings by state
type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterFinished
	FilterUnfinished
	FilterImportant
)

// ListTasks retrieves the tasks of one owner, date ascending, insertion order
// on ties
func (r *Repository) ListTasks(ownerID int64, filter TaskFilter) ([]models.Task, error) {
	query := `
		SELECT id, title, description, date, finished, important, user_id
		FROM tasks
		WHERE user_id = $1`
	switch filter {
	case FilterFinished:
		query += ` AND finished = TRUE`
	case FilterUnfinished:
		query += ` AND finished = FALSE`
	case FilterImportant:
		query += ` AND important = TRUE`
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Date,
			&t.Finished, &t.Important, &t.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

// FindTask retrieves a task by id scoped to its owner. A task that exists
// under a different owner is reported exactly like a missing one.
func (r *Repository) FindTask(ownerID, taskID int64) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, title, description, date, finished, important, user_id
		FROM tasks
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, taskID, ownerID).
		Scan(&task.ID, &task.Title, &task.Description, &task.Date,
			&task.Finished, &task.Important, &task.UserID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask updates a task's content fields, scoped to its owner
func (r *Repository) UpdateTask(task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, date = $3, important = $4
		WHERE id = $5 AND user_id = $6`
	res, err := r.db.Exec(query, task.Title, task.Description, task.Date,
		task.Important, task.ID, task.UserID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkAffected(res)
}

// SetTaskFinished sets the finished flag of a task, scoped to its owner
func (r *Repository) SetTaskFinished(ownerID, taskID int64, finished bool) error {
	query := `
		UPDATE tasks
		SET finished = $1
		WHERE id = $2 AND user_id = $3`
	res, err := r.db.Exec(query, finished, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkAffected(res)
}

// DeleteTask removes a task, scoped to its owner
func (r *Repository) DeleteTask(ownerID, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkAffected(res)
}

// DueTask is the reminder projection of a task joined with its owner
type DueTask struct {
	TaskID   int64
	Title    string
	Date     time.Time
	Username string
	Email    string
}

// ListDueTasks retrieves unfinished important tasks dated within the given
// day, joined with their owners' emails, for reminder delivery
func (r *Repository) ListDueTasks(dayStart, dayEnd time.Time) ([]DueTask, error) {
	query := `
		SELECT t.id, t.title, t.date, u.username, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.finished = FALSE AND t.important = TRUE
		  AND t.date >= $1 AND t.date < $2
		ORDER BY u.id, t.date`
	rows, err := r.db.Query(query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	defer rows.Close()

	due := []DueTask{}
	for rows.Next() {
		var d DueTask
		if err := rows.Scan(&d.TaskID, &d.Title, &d.Date, &d.Username, &d.Email); err != nil {
			return nil, fmt.Errorf("failed to scan due task: %w", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due tasks: %w", err)
	}
	return due, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
