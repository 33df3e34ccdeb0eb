package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// meal_types и delivery_days сохраняются как JSON-массивы с сохранением порядка.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	mealTypes, err := json.Marshal(sub.MealTypes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	deliveryDays, err := json.Marshal(sub.DeliveryDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscriptions (user_uid, name, phone, plan, meal_types,
			      delivery_days, allergies, total_price, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.Name, sub.Phone, sub.Plan, mealTypes, deliveryDays,
		sub.Allergies, sub.TotalPrice, sub.IsActive).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubscription возвращает подписку по её ID или errs.ErrNotFound.
func (s *Storage) ReadSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, phone, plan, meal_types, delivery_days,
			      allergies, total_price, is_active, pause_start_date, pause_end_date,
			      created_at, updated_at
			  FROM subscriptions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptionsByOwner возвращает подписки пользователя,
// новые первыми.
func (s *Storage) ListSubscriptionsByOwner(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptionsByOwner"
	query := `SELECT id, user_uid, name, phone, plan, meal_types, delivery_days,
			      allergies, total_price, is_active, pause_start_date, pause_end_date,
			      created_at, updated_at
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	return s.querySubscriptions(ctx, op, query, userUID)
}

// ListAllSubscriptions возвращает все подписки с пагинацией.
func (s *Storage) ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	query := `SELECT id, user_uid, name, phone, plan, meal_types, delivery_days,
			      allergies, total_price, is_active, pause_start_date, pause_end_date,
			      created_at, updated_at
			  FROM subscriptions
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	return s.querySubscriptions(ctx, op, query, limit, offset)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// scanner объединяет *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (*models.Subscription, error) {
	var sub models.Subscription
	var mealTypes, deliveryDays []byte
	var allergies sql.NullString
	var pauseStart, pauseEnd, updatedAt sql.NullTime
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.Name, &sub.Phone, &sub.Plan,
		&mealTypes, &deliveryDays, &allergies, &sub.TotalPrice, &sub.IsActive,
		&pauseStart, &pauseEnd, &sub.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mealTypes, &sub.MealTypes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(deliveryDays, &sub.DeliveryDays); err != nil {
		return nil, err
	}
	if allergies.Valid {
		sub.Allergies = &allergies.String
	}
	if pauseStart.Valid {
		sub.PauseStartDate = &pauseStart.Time
	}
	if pauseEnd.Valid {
		sub.PauseEndDate = &pauseEnd.Time
	}
	if updatedAt.Valid {
		sub.UpdatedAt = &updatedAt.Time
	}
	return &sub, nil
}

// PauseSubscription устанавливает окно паузы условным UPDATE:
// срабатывает только для активной подписки без окна. Ноль затронутых
// строк означает, что состояние уже изменил кто-то другой — из двух
// конкурентных пауз выигрывает ровно одна.
func (s *Storage) PauseSubscription(ctx context.Context, id int, start, end time.Time) (int, error) {
	const op = "storage.PauseSubscription"
	query := `UPDATE subscriptions
			  SET pause_start_date = $1, pause_end_date = $2, updated_at = now()
			  WHERE id = $3 AND is_active AND pause_start_date IS NULL`
	return s.execAffected(ctx, op, query, start, end, id)
}

// ResumeSubscription снимает окно паузы условным UPDATE:
// срабатывает только для активной подписки с установленным окном.
func (s *Storage) ResumeSubscription(ctx context.Context, id int) (int, error) {
	const op = "storage.ResumeSubscription"
	query := `UPDATE subscriptions
			  SET pause_start_date = NULL, pause_end_date = NULL, updated_at = now()
			  WHERE id = $1 AND is_active AND pause_start_date IS NOT NULL`
	return s.execAffected(ctx, op, query, id)
}

// DeactivateSubscription переводит подписку в неактивное состояние.
// Поля окна паузы не трогаются.
func (s *Storage) DeactivateSubscription(ctx context.Context, id int) (int, error) {
	const op = "storage.DeactivateSubscription"
	query := `UPDATE subscriptions
			  SET is_active = FALSE, updated_at = now()
			  WHERE id = $1 AND is_active`
	return s.execAffected(ctx, op, query, id)
}

func (s *Storage) execAffected(ctx context.Context, op, query string, args ...any) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
