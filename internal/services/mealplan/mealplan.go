// Package mealplan содержит бизнес-логику каталога планов питания.
package mealplan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/catering-backend/internal/lib/sanitize"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/pricing"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// Repository определяет методы для работы с каталогом в хранилище.
type Repository interface {
	// CreateMealPlan сохраняет новую позицию каталога и возвращает её ID.
	CreateMealPlan(ctx context.Context, mp models.MealPlan) (int, error)
	// ReadMealPlan возвращает позицию по ID или errs.ErrNotFound.
	ReadMealPlan(ctx context.Context, id int) (*models.MealPlan, error)
	// ListMealPlans возвращает позиции каталога, опционально только активные.
	ListMealPlans(ctx context.Context, activeOnly bool) ([]*models.MealPlan, error)
	// UpdateMealPlan обновляет позицию каталога.
	UpdateMealPlan(ctx context.Context, id int, mp models.MealPlan) error
	// DeactivateMealPlan скрывает позицию из каталога.
	DeactivateMealPlan(ctx context.Context, id int) error
}

// Service реализует операции каталога планов питания.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет позицию каталога. Название уникально, повтор даёт
// errs.ErrConflict. Тип плана привязан к словарю тарифов.
func (s *Service) Create(ctx context.Context, req models.MealPlanRequest) (*models.MealPlan, error) {
	const op = "services.mealplan.Create"

	mp, err := fromRequest(req)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateMealPlan(ctx, *mp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created meal plan", slog.Int("id", id))

	created, err := s.repo.ReadMealPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Get возвращает позицию каталога по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.MealPlan, error) {
	const op = "services.mealplan.Get"

	mp, err := s.repo.ReadMealPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return mp, nil
}

// ListActive возвращает активные позиции каталога для публичной витрины.
func (s *Service) ListActive(ctx context.Context) ([]*models.MealPlan, error) {
	const op = "services.mealplan.ListActive"

	items, err := s.repo.ListMealPlans(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// ListAll возвращает весь каталог. Доступ ограничен на уровне маршрута.
func (s *Service) ListAll(ctx context.Context) ([]*models.MealPlan, error) {
	const op = "services.mealplan.ListAll"

	items, err := s.repo.ListMealPlans(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Update перезаписывает позицию каталога и возвращает свежую запись.
func (s *Service) Update(ctx context.Context, id int, req models.MealPlanRequest) (*models.MealPlan, error) {
	const op = "services.mealplan.Update"

	mp, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMealPlan(ctx, id, *mp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated meal plan", slog.Int("id", id))

	updated, err := s.repo.ReadMealPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Deactivate скрывает позицию из каталога.
func (s *Service) Deactivate(ctx context.Context, id int) error {
	const op = "services.mealplan.Deactivate"

	if err := s.repo.DeactivateMealPlan(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("deactivated meal plan", slog.Int("id", id))
	return nil
}

func fromRequest(req models.MealPlanRequest) (*models.MealPlan, error) {
	if !pricing.ValidPlan(req.PlanType) {
		return nil, errs.Validation("plan_type", "must be one of: diet, protein, royal")
	}
	features := make([]string, 0, len(req.Features))
	for _, f := range req.Features {
		features = append(features, sanitize.Clean(f))
	}
	if len(features) == 0 {
		features = nil
	}
	return &models.MealPlan{
		Name:         sanitize.Clean(req.Name),
		Description:  sanitize.Clean(req.Description),
		PricePerMeal: req.PricePerMeal,
		PlanType:     req.PlanType,
		Features:     features,
		IsActive:     true,
	}, nil
}
