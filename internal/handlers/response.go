package handlers

import (
	"encoding/json"
	"net/http"
	"taskManager/internal/logger"

	"go.uber.org/zap"
)

// единый конверт ответа: success + data при успехе,
// success + message при ошибке
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func responseWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		logger.Error("HTTP: Ошибка кодирования ответа", err, zap.Int("status", status))
	}
}

// responseWithMessage — подтверждение без тела, текст на верхнем уровне
func responseWithMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{Success: true, Message: message}); err != nil {
		logger.Error("HTTP: Ошибка кодирования ответа", err, zap.Int("status", status))
	}
}

func responseWithError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope{
		Success: false,
		Message: message,
		Code:    code,
		Details: details,
	}); err != nil {
		logger.Error("HTTP: Ошибка кодирования ответа", err, zap.Int("status", status))
	}
}
