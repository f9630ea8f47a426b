package service

import (
	"context"
	"errors"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskWithUser дополняет задачу данными назначенного пользователя
// для списочных и детальных ответов
type TaskWithUser struct {
	Task         *task.Task
	AssignedUser *user.User
}

type TaskService struct {
	tasks TaskRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, users UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

func (s *TaskService) CreateTask(ctx context.Context, taskToCreate *task.Task) (*TaskWithUser, error) {
	if details := validateRequired(taskToCreate); len(details) > 0 {
		return nil, NewValidationError("не заполнены обязательные поля", details)
	}

	taskToCreate.ID = uuid.New()
	if taskToCreate.Priority == "" {
		taskToCreate.Priority = task.PriorityLow
	}
	if taskToCreate.Status == "" {
		taskToCreate.Status = task.StatusPending
	}

	if err := s.tasks.Create(ctx, taskToCreate); err != nil {
		logger.Error("Service: Не удалось создать задачу", err)
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", taskToCreate.ID.String()))
	return s.populateOne(ctx, taskToCreate), nil
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]*TaskWithUser, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		logger.Error("Service: Не удалось получить список задач", err)
		return nil, fmt.Errorf("получение списка задач: %w", err)
	}
	return s.populate(ctx, tasks), nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*TaskWithUser, error) {
	taskToGet, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача не найдена")
		}
		logger.Error("Service: Не удалось получить задачу", err, zap.String("task_id", id.String()))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return s.populateOne(ctx, taskToGet), nil
}

// UpdateTask применяет частичное обновление: загружает текущее состояние
// и накладывает только переданные изменения
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, opts ...task.TaskOption) (*TaskWithUser, error) {
	taskToUpdate, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача не найдена")
		}
		logger.Error("Service: Не удалось получить задачу для обновления", err, zap.String("task_id", id.String()))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	for _, opt := range opts {
		opt(taskToUpdate)
	}

	if details := validateRequired(taskToUpdate); len(details) > 0 {
		return nil, NewValidationError("не заполнены обязательные поля", details)
	}

	if err := s.tasks.Update(ctx, taskToUpdate); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("задача не найдена")
		}
		logger.Error("Service: Не удалось обновить задачу", err, zap.String("task_id", id.String()))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id.String()))
	return s.populateOne(ctx, taskToUpdate), nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFound("задача не найдена")
		}
		logger.Error("Service: Не удалось удалить задачу", err, zap.String("task_id", id.String()))
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id.String()))
	return nil
}

// GetTasksByUser не разворачивает пользователя: клиент и так знает, кого запросил
func (s *TaskService) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	tasks, err := s.tasks.GetByAssignedUser(ctx, userID)
	if err != nil {
		logger.Error("Service: Не удалось получить задачи пользователя", err, zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("получение задач пользователя: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.tasks.HealthCheck(ctx)
}

func validateRequired(t *task.Task) map[string]string {
	details := map[string]string{}
	if t.Title == "" {
		details["title"] = "обязательное поле"
	}
	if t.Description == "" {
		details["description"] = "обязательное поле"
	}
	if t.DueDate.IsZero() {
		details["dueDate"] = "обязательное поле"
	}
	return details
}

// populate разворачивает assigned_user одним батч-запросом.
// Нерезолвящийся пользователь не ошибка: справочник может отставать
func (s *TaskService) populate(ctx context.Context, tasks []*task.Task) []*TaskWithUser {
	ids := []uuid.UUID{}
	seen := map[uuid.UUID]struct{}{}
	for _, t := range tasks {
		if t.AssignedUser == nil {
			continue
		}
		if _, ok := seen[*t.AssignedUser]; !ok {
			seen[*t.AssignedUser] = struct{}{}
			ids = append(ids, *t.AssignedUser)
		}
	}

	users := map[uuid.UUID]*user.User{}
	if len(ids) > 0 {
		found, err := s.users.GetUsersByIDs(ctx, ids)
		if err != nil {
			logger.Warn("Service: Не удалось развернуть пользователей", zap.Error(err))
		} else {
			users = found
		}
	}

	res := make([]*TaskWithUser, 0, len(tasks))
	for _, t := range tasks {
		tw := &TaskWithUser{Task: t}
		if t.AssignedUser != nil {
			tw.AssignedUser = users[*t.AssignedUser]
		}
		res = append(res, tw)
	}
	return res
}

func (s *TaskService) populateOne(ctx context.Context, t *task.Task) *TaskWithUser {
	return s.populate(ctx, []*task.Task{t})[0]
}
