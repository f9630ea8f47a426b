package dto

import (
	"fmt"
	"strings"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/service"
	"time"

	"github.com/google/uuid"
)

// Date принимает и полный RFC3339, и короткую дату без времени
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "null" || raw == "" {
		return fmt.Errorf("пустая дата")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("неверный формат даты %q", raw)
	}
	d.Time = t
	return nil
}

type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DueDate      *Date   `json:"dueDate"`
	AssignedUser *string `json:"assignedUser"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
}

// Validate переводит тело запроса в доменную задачу,
// отклоняя значения вне закрытых перечислений
func (r *CreateTaskRequest) Validate() (*task.Task, map[string]string) {
	details := map[string]string{}

	t := &task.Task{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
	}

	if t.Title == "" {
		details["title"] = "обязательное поле"
	}
	if t.Description == "" {
		details["description"] = "обязательное поле"
	}

	if r.DueDate == nil {
		details["dueDate"] = "обязательное поле"
	} else {
		t.DueDate = r.DueDate.Time
	}

	if r.AssignedUser != nil && *r.AssignedUser != "" {
		id, err := uuid.Parse(*r.AssignedUser)
		if err != nil {
			details["assignedUser"] = "неверный идентификатор пользователя"
		} else {
			t.AssignedUser = &id
		}
	}

	if r.Priority != nil {
		p, err := task.ParsePriority(*r.Priority)
		if err != nil {
			details["priority"] = err.Error()
		} else {
			t.Priority = p
		}
	}

	if r.Status != nil {
		st, err := task.ParseStatus(*r.Status)
		if err != nil {
			details["status"] = err.Error()
		} else {
			t.Status = st
		}
	}

	if len(details) > 0 {
		return nil, details
	}
	return t, nil
}

// UpdateTaskRequest принимает только белый список полей,
// отсутствующие поля не трогают текущее состояние
type UpdateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *Date   `json:"dueDate"`
	AssignedUser *string `json:"assignedUser"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
}

func (r *UpdateTaskRequest) Validate() ([]task.TaskOption, map[string]string) {
	details := map[string]string{}
	opts := []task.TaskOption{}

	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			details["title"] = "не может быть пустым"
		} else {
			opts = append(opts, task.WithTitle(title))
		}
	}

	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		if description == "" {
			details["description"] = "не может быть пустым"
		} else {
			opts = append(opts, task.WithDescription(description))
		}
	}

	if r.DueDate != nil {
		opts = append(opts, task.WithDueDate(r.DueDate.Time))
	}

	if r.AssignedUser != nil {
		if *r.AssignedUser == "" {
			opts = append(opts, task.WithAssignedUser(nil))
		} else {
			id, err := uuid.Parse(*r.AssignedUser)
			if err != nil {
				details["assignedUser"] = "неверный идентификатор пользователя"
			} else {
				opts = append(opts, task.WithAssignedUser(&id))
			}
		}
	}

	if r.Priority != nil {
		p, err := task.ParsePriority(*r.Priority)
		if err != nil {
			details["priority"] = err.Error()
		} else {
			opts = append(opts, task.WithPriority(p))
		}
	}

	if r.Status != nil {
		st, err := task.ParseStatus(*r.Status)
		if err != nil {
			details["status"] = err.Error()
		} else {
			opts = append(opts, task.WithStatus(st))
		}
	}

	if len(details) > 0 {
		return nil, details
	}
	return opts, nil
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// TaskResponse отдаёт assignedUser либо строковым идентификатором,
// либо развёрнутым объектом пользователя
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      time.Time  `json:"dueDate"`
	AssignedUser any        `json:"assignedUser,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

func FromTask(t *task.Task) *TaskResponse {
	res := &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedUser != nil {
		res.AssignedUser = t.AssignedUser.String()
	}
	return res
}

func FromPopulated(tw *service.TaskWithUser) *TaskResponse {
	res := FromTask(tw.Task)
	if tw.AssignedUser != nil {
		res.AssignedUser = fromUser(tw.AssignedUser)
	}
	return res
}

func FromTasks(tasks []*task.Task) []*TaskResponse {
	res := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, FromTask(t))
	}
	return res
}

func FromPopulatedList(tasks []*service.TaskWithUser) []*TaskResponse {
	res := make([]*TaskResponse, 0, len(tasks))
	for _, tw := range tasks {
		res = append(res, FromPopulated(tw))
	}
	return res
}

func fromUser(u *user.User) *UserResponse {
	return &UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
