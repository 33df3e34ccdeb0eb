// Package auth содержит бизнес-логику учётных записей: регистрацию,
// вход по паролю, разрешение токена в пользователя и проверку роли.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/catering-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/catering-backend/internal/lib/password"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sanitize"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его uid.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по uid или errs.ErrNotFound.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// ListUsers возвращает пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// CountUsers возвращает общее количество пользователей.
	CountUsers(ctx context.Context) (int, error)
	// SetUserActive включает или выключает учётную запись.
	SetUserActive(ctx context.Context, uid string, active bool) error
	// SetUserAdmin назначает пользователя администратором.
	SetUserAdmin(ctx context.Context, uid string) error
	// UpdateUserFullName обновляет имя пользователя.
	UpdateUserFullName(ctx context.Context, uid, fullName string) error
}

// WelcomeNotifier публикует приветственное уведомление для нового пользователя.
type WelcomeNotifier interface {
	PublishWelcome(email, fullName string) error
}

// Service отвечает за регистрацию, вход и разрешение токенов в пользователей.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	tokenTTL time.Duration
	notifier WelcomeNotifier // nil, если очередь уведомлений не сконфигурирована
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, tokenTTL time.Duration,
	notifier WelcomeNotifier, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		tokenTTL: tokenTTL,
		notifier: notifier,
		log:      log,
	}
}

// Register создает нового пользователя: проверяет имя и сложность пароля,
// хэширует пароль и сохраняет запись. Повторный email дает errs.ErrConflict.
// Сбой публикации приветственного уведомления регистрацию не ломает.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.auth.Register"

	if !sanitize.ValidName(req.FullName) {
		return nil, errs.Validation("full_name", "must be 2-100 characters of letters, spaces and common punctuation")
	}
	if !password.ValidateStrength(req.Password) {
		return nil, errs.Validation("password", "must be at least 8 characters with uppercase, lowercase, number and special character")
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		FullName:     sanitize.Clean(req.FullName),
		Email:        sanitize.Clean(req.Email),
		PasswordHash: hashed,
		IsActive:     true,
		IsAdmin:      false, // новые пользователи не администраторы
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.notifier != nil {
		if err := s.notifier.PublishWelcome(user.Email, user.FullName); err != nil {
			s.log.Warn("failed to publish welcome notification", sl.Err(err))
		}
	}

	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Login проверяет пароль пользователя и выдает сессионный токен.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, sanitize.Clean(email))
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthenticated)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("%s: %w", op, errs.ErrAccountDisabled)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// Authenticate разрешает токен в пользователя. Любая проблема с токеном
// или отсутствие пользователя дают errs.ErrUnauthenticated,
// деактивированная учётная запись — errs.ErrAccountDisabled.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthenticated)
	}
	user, err := s.users.GetUser(ctx, claims.UserUID())
	if errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrAccountDisabled)
	}
	return user, nil
}

// RequireAdmin возвращает errs.ErrForbidden, если пользователь не администратор.
func (s *Service) RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return errs.ErrForbidden
	}
	return nil
}

// UpdateProfile обновляет имя пользователя и возвращает свежую запись.
func (s *Service) UpdateProfile(ctx context.Context, uid string, req models.UpdateProfileRequest) (*models.User, error) {
	const op = "services.auth.UpdateProfile"

	if !sanitize.ValidName(req.FullName) {
		return nil, errs.Validation("full_name", "must be 2-100 characters of letters, spaces and common punctuation")
	}
	if err := s.users.UpdateUserFullName(ctx, uid, sanitize.Clean(req.FullName)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// ListUsers возвращает пользователей с пагинацией и их общее количество.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	const op = "services.auth.ListUsers"

	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return users, total, nil
}

// SetUserActive включает или выключает учётную запись пользователя.
func (s *Service) SetUserActive(ctx context.Context, uid string, active bool) error {
	const op = "services.auth.SetUserActive"
	if err := s.users.SetUserActive(ctx, uid, active); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MakeAdmin назначает пользователя администратором.
func (s *Service) MakeAdmin(ctx context.Context, uid string) error {
	const op = "services.auth.MakeAdmin"
	if err := s.users.SetUserAdmin(ctx, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
