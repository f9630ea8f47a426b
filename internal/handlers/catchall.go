package handlers

import (
	"net/http"
	"taskManager/internal/logger"
	"taskManager/internal/service"
)

// NotFound закрывает все незарегистрированные маршруты единым конвертом
func NotFound(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Неизвестный маршрут")
	responseWithError(w, http.StatusNotFound, service.CodeNotFound, "маршрут не найден", nil)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Метод не поддерживается")
	responseWithError(w, http.StatusMethodNotAllowed, service.CodeMethodNotAllowed, "метод не поддерживается", nil)
}
