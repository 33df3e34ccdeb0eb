package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// CreateTestimonial сохраняет новый отзыв и возвращает его ID.
func (s *Storage) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	const op = "storage.CreateTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO testimonials (user_uid, name, message, rating, is_approved)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		t.UserUID, t.Name, t.Message, t.Rating, t.IsApproved).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTestimonials возвращает отзывы, новые первыми.
// При approvedOnly выбираются только одобренные.
func (s *Storage) ListTestimonials(ctx context.Context, approvedOnly bool) ([]*models.Testimonial, error) {
	const op = "storage.ListTestimonials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, message, rating, is_approved, created_at
			  FROM testimonials
			  WHERE ($1 = FALSE OR is_approved)
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		if err = rows.Scan(&t.ID, &t.UserUID, &t.Name, &t.Message, &t.Rating,
			&t.IsApproved, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ApproveTestimonial помечает отзыв одобренным.
func (s *Storage) ApproveTestimonial(ctx context.Context, id int) error {
	const op = "storage.ApproveTestimonial"
	query := `UPDATE testimonials SET is_approved = TRUE WHERE id = $1`
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

// RemoveTestimonial удаляет отзыв по ID.
func (s *Storage) RemoveTestimonial(ctx context.Context, id int) error {
	const op = "storage.RemoveTestimonial"
	query := `DELETE FROM testimonials WHERE id = $1`
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
