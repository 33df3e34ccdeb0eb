package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// CreateMealPlan сохраняет новую позицию каталога и возвращает её ID.
// Повторное название дает errs.ErrConflict.
func (s *Storage) CreateMealPlan(ctx context.Context, mp models.MealPlan) (int, error) {
	const op = "storage.CreateMealPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := marshalFeatures(mp.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO meal_plans (name, description, price_per_meal, plan_type, features, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		mp.Name, mp.Description, mp.PricePerMeal, mp.PlanType, features,
		mp.IsActive).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, errs.ErrConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMealPlan возвращает позицию каталога по ID или errs.ErrNotFound.
func (s *Storage) ReadMealPlan(ctx context.Context, id int) (*models.MealPlan, error) {
	const op = "storage.ReadMealPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price_per_meal, plan_type, features, is_active, created_at, updated_at
			  FROM meal_plans WHERE id = $1`
	mp, err := scanMealPlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return mp, nil
}

// ListMealPlans возвращает позиции каталога; при activeOnly — только активные.
func (s *Storage) ListMealPlans(ctx context.Context, activeOnly bool) ([]*models.MealPlan, error) {
	const op = "storage.ListMealPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price_per_meal, plan_type, features, is_active, created_at, updated_at
			  FROM meal_plans
			  WHERE ($1 = FALSE OR is_active)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MealPlan
	for rows.Next() {
		mp, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, mp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMealPlan обновляет позицию каталога по ID.
func (s *Storage) UpdateMealPlan(ctx context.Context, id int, mp models.MealPlan) error {
	const op = "storage.UpdateMealPlan"
	features, err := marshalFeatures(mp.Features)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE meal_plans
			  SET name = $1, description = $2, price_per_meal = $3, plan_type = $4,
			      features = $5, updated_at = now()
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		mp.Name, mp.Description, mp.PricePerMeal, mp.PlanType, features, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, errs.ErrConflict)
		}
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

// DeactivateMealPlan скрывает позицию каталога из публичной выдачи.
func (s *Storage) DeactivateMealPlan(ctx context.Context, id int) error {
	const op = "storage.DeactivateMealPlan"
	query := `UPDATE meal_plans SET is_active = FALSE, updated_at = now() WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
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

func marshalFeatures(features []string) ([]byte, error) {
	if features == nil {
		return nil, nil
	}
	return json.Marshal(features)
}

func scanMealPlan(row scanner) (*models.MealPlan, error) {
	var mp models.MealPlan
	var features []byte
	var updatedAt sql.NullTime
	if err := row.Scan(&mp.ID, &mp.Name, &mp.Description, &mp.PricePerMeal,
		&mp.PlanType, &features, &mp.IsActive, &mp.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if features != nil {
		if err := json.Unmarshal(features, &mp.Features); err != nil {
			return nil, err
		}
	}
	if updatedAt.Valid {
		mp.UpdatedAt = &updatedAt.Time
	}
	return &mp, nil
}
