// Package models содержит доменные структуры системы: пользователей,
// подписки на питание, отзывы и позиции каталога, а также DTO для приёма
// данных из JSON-запросов до их валидации.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     `json:"uid"`        // Уникальный идентификатор пользователя
	FullName     string     `json:"full_name"`  // Полное имя
	Email        string     `json:"email"`      // Электронная почта (уникальная, ключ входа)
	PasswordHash string     `json:"-"`          // Хэш пароля, наружу не отдается
	IsActive     bool       `json:"is_active"`  // Признак активности учётной записи
	IsAdmin      bool       `json:"is_admin"`   // Признак администратора
	CreatedAt    time.Time  `json:"created_at"` // Дата создания
	UpdatedAt    *time.Time `json:"updated_at"` // Дата последнего обновления, может отсутствовать
}

// RegisterRequest — входные данные регистрации.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest — входные данные авторизации.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest — входные данные обновления профиля.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}
