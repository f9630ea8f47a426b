package inmemory

import (
	"context"
	"sort"
	"sync"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"
	"time"

	"github.com/google/uuid"
)

type Storage struct {
	tasks map[uuid.UUID]*task.Task
	users map[uuid.UUID]userRecord
	mtx   *sync.RWMutex
	order []uuid.UUID
}

func NewStorage() *Storage {
	return &Storage{
		tasks: make(map[uuid.UUID]*task.Task),
		users: make(map[uuid.UUID]userRecord),
		mtx:   &sync.RWMutex{},
		order: []uuid.UUID{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return nil
}

// cloneTask отвязывает выдаваемые наружу задачи от хранимых:
// читатели не должны видеть чужие правки до Update
func cloneTask(t *task.Task) *task.Task {
	c := *t
	if t.AssignedUser != nil {
		assigned := *t.AssignedUser
		c.AssignedUser = &assigned
	}
	if t.UpdatedAt != nil {
		updated := *t.UpdatedAt
		c.UpdatedAt = &updated
	}
	return &c
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()

	s.tasks[taskToCreate.ID] = cloneTask(taskToCreate)
	s.order = append(s.order, taskToCreate.ID)
	return nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.UpdatedAt = &now
	s.tasks[taskToUpdate.ID] = cloneTask(taskToUpdate)
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneTask(taskToGet), nil
}

// жёсткое удаление, без пометок
func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.tasks, id)
	for ind, val := range s.order {
		if val == id {
			s.order = append(s.order[:ind], s.order[ind+1:]...)
			break
		}
	}
	return nil
}

// все задачи, свежесозданные первыми
func (s *Storage) GetAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.order))
	// обход с конца, чтобы при равных created_at свежие шли первыми
	for i := len(s.order) - 1; i >= 0; i-- {
		res = append(res, cloneTask(s.tasks[s.order[i]]))
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// задачи назначенного пользователя, ближайший дедлайн первым
func (s *Storage) GetByAssignedUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.order {
		t := s.tasks[id]
		if t.AssignedUser != nil && *t.AssignedUser == userID {
			res = append(res, cloneTask(t))
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].DueDate.Before(res[j].DueDate)
	})
	return res, nil
}
