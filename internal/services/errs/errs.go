// Package errs определяет классификацию доменных ошибок сервиса.
//
// Сервисы возвращают ошибки из этого набора, а HTTP-слой переводит их
// в статус-коды. Детали внутренних сбоев наружу не отдаются.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated — токен отсутствует, просрочен или не прошёл проверку.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrAccountDisabled — учётная запись пользователя деактивирована.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrForbidden — операция запрещена для роли или не-владельца.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState — недопустимый переход жизненного цикла подписки.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict — нарушение уникальности, например повторная регистрация email.
	ErrConflict = errors.New("conflict")
)

// ValidationError описывает ошибку валидации входных данных
// с указанием конкретного поля.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// Validation создает ValidationError для поля field с текстом msg.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation сообщает, является ли ошибка ошибкой валидации,
// и возвращает её для доступа к полю.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
