package postgres_test

import (
	"context"
	"fmt"
	"os"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"
	"taskManager/internal/repository/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	conn       *pgx.Conn
	connString string
	ctx        context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	s.storage, err = postgres.New(s.ctx, s.connString)
	require.NoError(s.T(), err)

	s.conn, err = pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.applyTestMigrations())
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.conn != nil {
		s.conn.Close(s.ctx)
	}
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	_, err := s.conn.Exec(s.ctx, "DELETE FROM tasks")
	require.NoError(s.T(), err)
	_, err = s.conn.Exec(s.ctx, "DELETE FROM users")
	require.NoError(s.T(), err)
}

// applyTestMigrations повторяет схему из internal/migrations
func (s *PostgresTestSuite) applyTestMigrations() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		due_date TIMESTAMPTZ NOT NULL,
		assigned_user UUID,
		priority TEXT NOT NULL DEFAULT 'Low',
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);
	`

	_, err := s.conn.Exec(s.ctx, query)
	return err
}

func (s *PostgresTestSuite) seedUser(username, email string) uuid.UUID {
	id := uuid.New()
	_, err := s.conn.Exec(s.ctx,
		"INSERT INTO users (id, username, email) VALUES ($1, $2, $3)", id, username, email)
	require.NoError(s.T(), err)
	return id
}

func newTestTask(title string, due time.Time) *task.Task {
	return &task.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		DueDate:     due,
		Priority:    task.PriorityLow,
		Status:      task.StatusPending,
	}
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) TestStorage_Create() {
	ctx := context.Background()

	taskToCreate := newTestTask("Test Task", time.Now().Add(24*time.Hour))
	err := s.storage.Create(ctx, taskToCreate)
	require.NoError(s.T(), err)
	assert.False(s.T(), taskToCreate.CreatedAt.IsZero())

	retrieved, err := s.storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Test Task", retrieved.Title)
	assert.Equal(s.T(), task.PriorityLow, retrieved.Priority)
	assert.Equal(s.T(), task.StatusPending, retrieved.Status)
	assert.Nil(s.T(), retrieved.AssignedUser)
	assert.Nil(s.T(), retrieved.UpdatedAt)
}

// существование назначенного пользователя при записи не проверяется
func (s *PostgresTestSuite) TestStorage_Create_UnknownAssignedUser() {
	ctx := context.Background()

	unknownUser := uuid.New()
	taskToCreate := newTestTask("Orphan assignee", time.Now().Add(24*time.Hour))
	taskToCreate.AssignedUser = &unknownUser

	require.NoError(s.T(), s.storage.Create(ctx, taskToCreate))

	retrieved, err := s.storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), retrieved.AssignedUser)
	assert.Equal(s.T(), unknownUser, *retrieved.AssignedUser)

	taskToCreate.AssignedUser = &unknownUser
	require.NoError(s.T(), s.storage.Update(ctx, taskToCreate))
}

func (s *PostgresTestSuite) TestStorage_GetByID_NotFound() {
	_, err := s.storage.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Update() {
	ctx := context.Background()

	taskToCreate := newTestTask("Original", time.Now().Add(24*time.Hour))
	require.NoError(s.T(), s.storage.Create(ctx, taskToCreate))

	taskToCreate.Title = "Updated"
	taskToCreate.Status = task.StatusCompleted
	require.NoError(s.T(), s.storage.Update(ctx, taskToCreate))
	assert.NotNil(s.T(), taskToCreate.UpdatedAt)

	retrieved, err := s.storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated", retrieved.Title)
	assert.Equal(s.T(), task.StatusCompleted, retrieved.Status)
	assert.NotNil(s.T(), retrieved.UpdatedAt)
}

func (s *PostgresTestSuite) TestStorage_Update_NotFound() {
	missing := newTestTask("Missing", time.Now())
	err := s.storage.Update(context.Background(), missing)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Delete() {
	ctx := context.Background()

	taskToCreate := newTestTask("To delete", time.Now().Add(24*time.Hour))
	require.NoError(s.T(), s.storage.Create(ctx, taskToCreate))

	require.NoError(s.T(), s.storage.Delete(ctx, taskToCreate.ID))

	_, err := s.storage.GetByID(ctx, taskToCreate.ID)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)

	assert.ErrorIs(s.T(), s.storage.Delete(ctx, taskToCreate.ID), repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_GetAll_Order() {
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		taskToCreate := newTestTask(fmt.Sprintf("Task %d", i), time.Now().Add(24*time.Hour))
		require.NoError(s.T(), s.storage.Create(ctx, taskToCreate))
		time.Sleep(5 * time.Millisecond)
	}

	tasks, err := s.storage.GetAll(ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 3)
	assert.Equal(s.T(), "Task 3", tasks[0].Title)
	assert.Equal(s.T(), "Task 1", tasks[2].Title)
}

func (s *PostgresTestSuite) TestStorage_GetByAssignedUser_Order() {
	ctx := context.Background()
	now := time.Now()

	userID := s.seedUser("alice", "alice@example.com")
	otherID := s.seedUser("bob", "bob@example.com")

	late := newTestTask("late", now.Add(72*time.Hour))
	late.AssignedUser = &userID
	soon := newTestTask("soon", now.Add(1*time.Hour))
	soon.AssignedUser = &userID
	foreign := newTestTask("foreign", now.Add(2*time.Hour))
	foreign.AssignedUser = &otherID

	for _, taskToCreate := range []*task.Task{late, soon, foreign} {
		require.NoError(s.T(), s.storage.Create(ctx, taskToCreate))
	}

	tasks, err := s.storage.GetByAssignedUser(ctx, userID)
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 2)
	assert.Equal(s.T(), "soon", tasks[0].Title)
	assert.Equal(s.T(), "late", tasks[1].Title)
}

func (s *PostgresTestSuite) TestStorage_Users() {
	ctx := context.Background()

	aliceID := s.seedUser("alice", "alice@example.com")

	retrieved, err := s.storage.GetUserByID(ctx, aliceID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", retrieved.Username)

	_, err = s.storage.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)

	users, err := s.storage.GetUsersByIDs(ctx, []uuid.UUID{aliceID, uuid.New()})
	require.NoError(s.T(), err)
	require.Len(s.T(), users, 1)
	assert.Equal(s.T(), "alice@example.com", users[aliceID].Email)
}

func (s *PostgresTestSuite) TestStorage_HealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(context.Background()))
}

// Unit тесты (без базы данных)
func TestStorage_New_InvalidConnString(t *testing.T) {
	_, err := postgres.New(context.Background(), "invalid://conn")
	assert.Error(t, err)
}

func TestStorage_Close_NoPanic(t *testing.T) {
	storage := &postgres.Storage{}
	assert.NotPanics(t, func() {
		storage.Close()
	})
}
