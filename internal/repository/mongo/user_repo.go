package mongo

import (
	"context"
	"errors"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// коллекцию users ведёт сервис авторизации, здесь только выборка
// для разворачивания assigned_user в ответах

type userDoc struct {
	ID       string `bson:"_id"`
	Username string `bson:"username"`
	Email    string `bson:"email"`
}

func fromUserDoc(doc *userDoc) (*user.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("разбор id пользователя: %w", err)
	}
	return &user.User{ID: id, Username: doc.Username, Email: doc.Email}, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	doc := &userDoc{}
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return fromUserDoc(doc)
}

func (s *Storage) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*user.User, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*user.User{}, nil
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": strIDs}})
	if err != nil {
		logger.Error("Repository: Не удалось получить пользователей", err)
		return nil, fmt.Errorf("получение пользователей: %w", err)
	}
	defer cursor.Close(ctx)

	res := make(map[uuid.UUID]*user.User, len(ids))
	for cursor.Next(ctx) {
		doc := &userDoc{}
		if err := cursor.Decode(doc); err != nil {
			logger.Error("Repository: Ошибка декодирования пользователя", err)
			return nil, fmt.Errorf("декодирование пользователя: %w", err)
		}

		u, err := fromUserDoc(doc)
		if err != nil {
			return nil, err
		}
		res[u.ID] = u
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("итерация по курсору: %w", err)
	}
	return res, nil
}

// PutUser заполняет справочник пользователей, используется тестами и сидингом
func (s *Storage) PutUser(ctx context.Context, u *user.User) error {
	doc := &userDoc{ID: u.ID.String(), Username: u.Username, Email: u.Email}

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(usersCollection).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	if err != nil {
		logger.Error("Repository: Не удалось сохранить пользователя", err)
		return fmt.Errorf("сохранение пользователя: %w", err)
	}
	return nil
}
