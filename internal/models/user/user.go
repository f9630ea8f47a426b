package user

import "github.com/google/uuid"

// User принадлежит сервису авторизации, здесь только чтение для
// разворачивания ссылки assignedUser в ответах
type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Email    string    `json:"email" db:"email"`
}
