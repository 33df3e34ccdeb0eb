package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// CreateUser сохраняет нового пользователя и возвращает его uid.
// Повторный email дает errs.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (full_name, email, password_hash, is_active, is_admin)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.FullName, user.Email, user.PasswordHash, user.IsActive,
		user.IsAdmin).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, errs.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
// Сравнение email чувствительно к регистру, как и ограничение уникальности.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	query := `SELECT uid, full_name, email, password_hash, is_active, is_admin, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(ctx, op, query, email)
}

// GetUser возвращает пользователя по uid или errs.ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUser"
	query := `SELECT uid, full_name, email, password_hash, is_active, is_admin, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(ctx, op, query, uid)
}

func (s *Storage) scanUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	var updatedAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&u.UID, &u.FullName, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.IsAdmin, &u.CreatedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, full_name, email, password_hash, is_active, is_admin, created_at, updated_at
			  FROM users
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var updatedAt sql.NullTime
		if err = rows.Scan(&u.UID, &u.FullName, &u.Email, &u.PasswordHash,
			&u.IsActive, &u.IsAdmin, &u.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if updatedAt.Valid {
			u.UpdatedAt = &updatedAt.Time
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// SetUserActive включает или выключает учётную запись пользователя.
func (s *Storage) SetUserActive(ctx context.Context, uid string, active bool) error {
	const op = "storage.SetUserActive"
	query := `UPDATE users SET is_active = $1, updated_at = now() WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, active, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// SetUserAdmin назначает пользователя администратором.
func (s *Storage) SetUserAdmin(ctx context.Context, uid string) error {
	const op = "storage.SetUserAdmin"
	query := `UPDATE users SET is_admin = TRUE, updated_at = now() WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// UpdateUserFullName обновляет имя пользователя.
func (s *Storage) UpdateUserFullName(ctx context.Context, uid, fullName string) error {
	const op = "storage.UpdateUserFullName"
	query := `UPDATE users SET full_name = $1, updated_at = now() WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, fullName, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}

// AdminExists сообщает, есть ли в системе хотя бы один администратор.
// Используется при первичном сидировании.
func (s *Storage) AdminExists(ctx context.Context) (bool, error) {
	const op = "storage.AdminExists"
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE is_admin)`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
