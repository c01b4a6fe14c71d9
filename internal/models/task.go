package models

import "time"

// Task represents a single task owned by exactly one user
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Finished    bool      `json:"finished"`
	Important   bool      `json:"important"`
	UserID      int64     `json:"user_id"`
}

// TaskInput carries client-supplied task fields. The owner is never taken
// from here; it always comes from the authenticated identity.
type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Important   bool      `json:"important"`
}
