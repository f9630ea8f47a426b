package service

import "fmt"

const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// BusinessError переносит бизнес-ошибку через границу сервиса,
// обработчики переводят код в HTTP-статус
type BusinessError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(message string) *BusinessError {
	return &BusinessError{Code: CodeNotFound, Message: message}
}

func NewValidationError(message string, details map[string]string) *BusinessError {
	return &BusinessError{Code: CodeValidationError, Message: message, Details: details}
}
