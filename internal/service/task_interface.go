package service

import (
	"context"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(ctx context.Context, taskToCreate *task.Task) error
	Update(ctx context.Context, taskToUpdate *task.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]*task.Task, error)
	GetByAssignedUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error)
	HealthCheck(ctx context.Context) error
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error)
}
