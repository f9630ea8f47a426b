package handlers

import (
	"errors"
	"net/http"
	"taskManager/internal/logger"
	"taskManager/internal/service"

	"go.uber.org/zap"
)

// handleServiceError переводит бизнес-ошибки в HTTP-статусы.
// Внутренние ошибки не раскрываются клиенту
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case service.CodeNotFound:
			responseWithError(w, http.StatusNotFound, businessErr.Code, businessErr.Message, nil)
		case service.CodeValidationError:
			responseWithError(w, http.StatusBadRequest, businessErr.Code, businessErr.Message, businessErr.Details)
		default:
			responseWithError(w, http.StatusInternalServerError, service.CodeInternalError, "внутренняя ошибка сервера", nil)
		}
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err, zap.String("path", r.URL.Path))
	responseWithError(w, http.StatusInternalServerError, service.CodeInternalError, "внутренняя ошибка сервера", nil)
}
