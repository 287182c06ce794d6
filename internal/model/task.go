package model

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyTaskTitle = errors.New("model: task title is required")

// Task is a to-do entry. Tasks live only as long as the running program.
type Task struct {
	ID        string
	Title     string
	Done      bool
	CreatedAt time.Time
}

func NewTask(id, title string, now time.Time) (Task, error) {
	t := Task{ID: id, Title: strings.TrimSpace(title), CreatedAt: now}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}
