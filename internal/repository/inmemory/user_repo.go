package inmemory

import (
	"context"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
)

type userRecord struct {
	username string
	email    string
}

// PutUser заполняет справочник пользователей, пишет их внешний сервис
func (s *Storage) PutUser(u *user.User) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.users[u.ID] = userRecord{username: u.Username, email: u.Email}
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &user.User{ID: id, Username: rec.username, Email: rec.email}, nil
}

func (s *Storage) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make(map[uuid.UUID]*user.User, len(ids))
	for _, id := range ids {
		if rec, ok := s.users[id]; ok {
			res[id] = &user.User{ID: id, Username: rec.username, Email: rec.email}
		}
	}
	return res, nil
}
