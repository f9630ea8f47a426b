package task

import (
	"time"

	"github.com/google/uuid"
)

// TaskOption — функция частичного обновления: PUT применяет только
// переданные поля, остальные не трогает
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	return func(task *Task) {
		task.DueDate = dueDate
	}
}

func WithStatus(status Status) TaskOption {
	return func(task *Task) {
		task.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithAssignedUser(userID *uuid.UUID) TaskOption {
	return func(task *Task) {
		task.AssignedUser = userID
	}
}
