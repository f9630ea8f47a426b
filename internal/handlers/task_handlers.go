package handlers

import (
	"encoding/json"
	"net/http"
	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandlers struct {
	service TaskService
}

func NewTaskHandlers(service TaskService) *TaskHandlers {
	return &TaskHandlers{service: service}
}

// POST /api/tasks/create
func (h *TaskHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	req := &dto.CreateTaskRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.HttpRequestInfo(r, "HTTP: Некорректное тело запроса", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, service.CodeValidationError, "некорректное тело запроса", nil)
		return
	}

	taskToCreate, details := req.Validate()
	if details != nil {
		responseWithError(w, http.StatusBadRequest, service.CodeValidationError, "ошибка валидации", details)
		return
	}

	created, err := h.service.CreateTask(r.Context(), taskToCreate)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, dto.FromPopulated(created))
}

// GET /api/tasks/
func (h *TaskHandlers) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromPopulatedList(tasks))
}

// GET /api/tasks/{id}
func (h *TaskHandlers) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	taskToGet, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromPopulated(taskToGet))
}

// PUT /api/tasks/{id}
func (h *TaskHandlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	req := &dto.UpdateTaskRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.HttpRequestInfo(r, "HTTP: Некорректное тело запроса", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, service.CodeValidationError, "некорректное тело запроса", nil)
		return
	}

	opts, details := req.Validate()
	if details != nil {
		responseWithError(w, http.StatusBadRequest, service.CodeValidationError, "ошибка валидации", details)
		return
	}

	updated, err := h.service.UpdateTask(r.Context(), id, opts...)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromPopulated(updated))
}

// DELETE /api/tasks/{id}
func (h *TaskHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithMessage(w, http.StatusOK, "задача удалена")
}

// GET /api/tasks/user/{userId}
func (h *TaskHandlers) GetTasksByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	tasks, err := h.service.GetTasksByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, dto.FromTasks(tasks))
}

// GET /health
func (h *TaskHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, service.CodeInternalError, "хранилище недоступно", nil)
		return
	}

	responseWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /
func (h *TaskHandlers) Root(w http.ResponseWriter, r *http.Request) {
	responseWithJSON(w, http.StatusOK, map[string]string{"message": "Task Manager API работает"})
}

// кривой идентификатор в пути это ошибка клиента, не 404
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)

	id, err := uuid.Parse(raw)
	if err != nil {
		logger.HttpRequestInfo(r, "HTTP: Некорректный идентификатор", zap.String("param", name), zap.String("value", raw))
		responseWithError(w, http.StatusBadRequest, service.CodeValidationError, "некорректный идентификатор", nil)
		return uuid.Nil, false
	}
	return id, true
}
