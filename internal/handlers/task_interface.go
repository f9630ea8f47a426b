package handlers

import (
	"context"
	"taskManager/internal/models/task"
	"taskManager/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	CreateTask(ctx context.Context, taskToCreate *task.Task) (*service.TaskWithUser, error)
	GetAllTasks(ctx context.Context) ([]*service.TaskWithUser, error)
	GetTaskByID(ctx context.Context, id uuid.UUID) (*service.TaskWithUser, error)
	UpdateTask(ctx context.Context, id uuid.UUID, opts ...task.TaskOption) (*service.TaskWithUser, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error)
	HealthCheck(ctx context.Context) error
}
