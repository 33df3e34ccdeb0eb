// Package testimonial содержит бизнес-логику отзывов клиентов с модерацией.
package testimonial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/catering-backend/internal/lib/sanitize"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// Repository определяет методы для работы с отзывами в хранилище.
type Repository interface {
	// CreateTestimonial сохраняет новый отзыв и возвращает его ID.
	CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error)
	// ListTestimonials возвращает отзывы, опционально только одобренные.
	ListTestimonials(ctx context.Context, approvedOnly bool) ([]*models.Testimonial, error)
	// ApproveTestimonial помечает отзыв как одобренный.
	ApproveTestimonial(ctx context.Context, id int) error
	// RemoveTestimonial удаляет отзыв.
	RemoveTestimonial(ctx context.Context, id int) error
}

// Service реализует создание и модерацию отзывов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет отзыв. Новый отзыв всегда ждёт модерации.
func (s *Service) Create(ctx context.Context, authorUID string, req models.CreateTestimonialRequest) (int, error) {
	const op = "services.testimonial.Create"

	if !sanitize.ValidName(req.Name) {
		return 0, errs.Validation("name", "must be 2-100 characters of letters, spaces and common punctuation")
	}
	message := sanitize.Clean(req.Message)
	if !sanitize.ValidMessage(message) {
		return 0, errs.Validation("message", "must be 10-1000 characters")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return 0, errs.Validation("rating", "must be between 1 and 5")
	}

	id, err := s.repo.CreateTestimonial(ctx, models.Testimonial{
		UserUID:    authorUID,
		Name:       sanitize.Clean(req.Name),
		Message:    message,
		Rating:     req.Rating,
		IsApproved: false,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created testimonial", slog.Int("id", id))
	return id, nil
}

// ListApproved возвращает одобренные отзывы для публичной витрины.
func (s *Service) ListApproved(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "services.testimonial.ListApproved"

	items, err := s.repo.ListTestimonials(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// ListAll возвращает все отзывы для модерации. Доступ ограничен на уровне маршрута.
func (s *Service) ListAll(ctx context.Context) ([]*models.Testimonial, error) {
	const op = "services.testimonial.ListAll"

	items, err := s.repo.ListTestimonials(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Approve помечает отзыв одобренным.
func (s *Service) Approve(ctx context.Context, id int) error {
	const op = "services.testimonial.Approve"

	if err := s.repo.ApproveTestimonial(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("approved testimonial", slog.Int("id", id))
	return nil
}

// Remove удаляет отзыв.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.testimonial.Remove"

	if err := s.repo.RemoveTestimonial(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed testimonial", slog.Int("id", id))
	return nil
}
