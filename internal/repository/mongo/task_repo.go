package mongo

import (
	"context"
	"errors"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	tasksCollection = "tasks"
	usersCollection = "users"
)

type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// taskDoc хранит идентификаторы строками, чтобы документы читались
// штатными инструментами mongo без бинарных uuid
type taskDoc struct {
	ID           string     `bson:"_id"`
	Title        string     `bson:"title"`
	Description  string     `bson:"description"`
	DueDate      time.Time  `bson:"due_date"`
	AssignedUser *string    `bson:"assigned_user,omitempty"`
	Priority     string     `bson:"priority"`
	Status       string     `bson:"status"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty"`
}

func New(ctx context.Context, uri, dbName string) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное подключение к MongoDB", zap.String("database", dbName))
	return &Storage{client: client, db: client.Database(dbName)}, nil
}

func (s *Storage) Close(ctx context.Context) {
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			logger.Error("Repository: Ошибка отключения от MongoDB", err)
			return
		}
		logger.Info("Repository: Закрытие соединения с MongoDB")
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// EnsureIndexes создаёт индексы под два списочных запроса
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(tasksCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_user", Value: 1}, {Key: "due_date", Value: 1}}},
	})
	if err != nil {
		logger.Error("Repository: Не удалось создать индексы", err)
		return fmt.Errorf("создание индексов: %w", err)
	}
	return nil
}

func toDoc(t *task.Task) *taskDoc {
	doc := &taskDoc{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedUser != nil {
		assigned := t.AssignedUser.String()
		doc.AssignedUser = &assigned
	}
	return doc
}

func fromDoc(doc *taskDoc) (*task.Task, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("разбор id документа: %w", err)
	}

	t := &task.Task{
		ID:          id,
		Title:       doc.Title,
		Description: doc.Description,
		DueDate:     doc.DueDate,
		Priority:    task.Priority(doc.Priority),
		Status:      task.Status(doc.Status),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.AssignedUser != nil {
		assigned, err := uuid.Parse(*doc.AssignedUser)
		if err != nil {
			return nil, fmt.Errorf("разбор assigned_user документа: %w", err)
		}
		t.AssignedUser = &assigned
	}
	return t, nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	taskToCreate.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := s.db.Collection(tasksCollection).InsertOne(ctx, toDoc(taskToCreate))
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	doc := &taskDoc{}
	err := s.db.Collection(tasksCollection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return fromDoc(doc)
}

// полная перезапись изменяемых полей, последняя запись выигрывает
func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{
		"title":       taskToUpdate.Title,
		"description": taskToUpdate.Description,
		"due_date":    taskToUpdate.DueDate,
		"priority":    string(taskToUpdate.Priority),
		"status":      string(taskToUpdate.Status),
		"updated_at":  now,
	}}
	if taskToUpdate.AssignedUser != nil {
		update["$set"].(bson.M)["assigned_user"] = taskToUpdate.AssignedUser.String()
	} else {
		update["$unset"] = bson.M{"assigned_user": ""}
	}

	res, err := s.db.Collection(tasksCollection).UpdateByID(ctx, taskToUpdate.ID.String(), update)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	taskToUpdate.UpdatedAt = &now

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.Collection(tasksCollection).DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		logger.Error("Repository: Удаление задачи", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// все задачи, свежесозданные первыми
func (s *Storage) GetAll(ctx context.Context) ([]*task.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.findTasks(ctx, bson.M{}, opts)
}

// задачи назначенного пользователя, ближайший дедлайн первым
func (s *Storage) GetByAssignedUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	return s.findTasks(ctx, bson.M{"assigned_user": userID.String()}, opts)
}

func (s *Storage) findTasks(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*task.Task, error) {
	start := time.Now()

	cursor, err := s.db.Collection(tasksCollection).Find(ctx, filter, opts)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*task.Task{}
	for cursor.Next(ctx) {
		doc := &taskDoc{}
		if err := cursor.Decode(doc); err != nil {
			logger.Error("Repository: Ошибка декодирования задачи", err)
			return nil, fmt.Errorf("декодирование задачи: %w", err)
		}

		t, err := fromDoc(doc)
		if err != nil {
			logger.Error("Repository: Повреждённый документ задачи", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := cursor.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по курсору", err)
		return nil, fmt.Errorf("итерация по курсору: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}
