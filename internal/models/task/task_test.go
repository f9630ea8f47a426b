package task_test

import (
	"taskManager/internal/models/task"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"Pending", "InProgress", "Completed"} {
		status, err := task.ParseStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, task.Status(raw), status)
	}

	_, err := task.ParseStatus("Done")
	assert.Error(t, err)

	// регистр имеет значение
	_, err = task.ParseStatus("pending")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	for _, raw := range []string{"Low", "Medium", "High"} {
		priority, err := task.ParsePriority(raw)
		assert.NoError(t, err)
		assert.Equal(t, task.Priority(raw), priority)
	}

	_, err := task.ParsePriority("Urgent")
	assert.Error(t, err)
}

func TestTaskOptions(t *testing.T) {
	userID := uuid.New()
	due := time.Now().Add(48 * time.Hour)

	taskToUpdate := &task.Task{
		Title:       "Old",
		Description: "Old desc",
		Priority:    task.PriorityLow,
		Status:      task.StatusPending,
	}

	opts := []task.TaskOption{
		task.WithTitle("New"),
		task.WithDueDate(due),
		task.WithStatus(task.StatusCompleted),
		task.WithAssignedUser(&userID),
	}
	for _, opt := range opts {
		opt(taskToUpdate)
	}

	assert.Equal(t, "New", taskToUpdate.Title)
	assert.Equal(t, "Old desc", taskToUpdate.Description)
	assert.Equal(t, due, taskToUpdate.DueDate)
	assert.Equal(t, task.StatusCompleted, taskToUpdate.Status)
	assert.Equal(t, &userID, taskToUpdate.AssignedUser)

	task.WithAssignedUser(nil)(taskToUpdate)
	assert.Nil(t, taskToUpdate.AssignedUser)
}
