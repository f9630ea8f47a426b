package postgres

import (
	"context"
	"errors"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// таблицу users ведёт сервис авторизации, здесь только выборка
// для разворачивания assigned_user в ответах

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT id, username, email FROM users WHERE id = $1`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return u, nil
}

func (s *Storage) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*user.User{}, nil
	}

	query := `SELECT id, username, email FROM users WHERE id = ANY($1)`

	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	defer rows.Close()

	res := make(map[uuid.UUID]*user.User, len(ids))
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			logger.Error("Repository: Ошибка сканирования пользователя", err)
			return nil, fmt.Errorf("сканирование пользователя: %w", err)
		}
		res[u.ID] = u
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return res, nil
}
