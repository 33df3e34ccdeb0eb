// Package dashboard собирает бизнес-метрики подписок для админ-панели.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// Repository определяет агрегатные запросы по подпискам.
type Repository interface {
	// CountSubscriptionsCreatedBetween считает подписки, созданные в диапазоне дат.
	CountSubscriptionsCreatedBetween(ctx context.Context, start, end time.Time) (int, error)
	// CountEffectivelyActive считает активные подписки, не находящиеся на паузе.
	CountEffectivelyActive(ctx context.Context, today time.Time) (int, error)
	// CountPaused считает активные подписки на паузе.
	CountPaused(ctx context.Context, today time.Time) (int, error)
	// SumActiveTotalPrice суммирует total_price фактически активных подписок.
	SumActiveTotalPrice(ctx context.Context, today time.Time) (float64, error)
	// CountReactivations считает активные подписки, обновлённые в диапазоне.
	CountReactivations(ctx context.Context, start, end time.Time) (int, error)
}

// Service считает метрики для панели администратора.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time // Источник времени, подменяется в тестах.
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// NewWithClock создаёт Service с заданным источником времени.
func NewWithClock(repo Repository, log *slog.Logger, now func() time.Time) *Service {
	s := New(repo, log)
	s.now = now
	return s
}

// Metrics возвращает сводку по подпискам за диапазон дат. Нулевые границы
// подставляются по умолчанию: начало текущего месяца и сегодняшний день.
// Счётчик реактиваций приближённый: активная подписка, обновлённая в
// диапазоне, считается реактивированной.
func (s *Service) Metrics(ctx context.Context, start, end time.Time) (*models.DashboardMetrics, error) {
	const op = "services.dashboard.Metrics"

	today := s.now().Truncate(24 * time.Hour)
	if start.IsZero() {
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	}
	if end.IsZero() {
		end = today
	}
	if start.After(end) {
		return nil, errs.Validation("start_date", "must not be after end_date")
	}

	newSubs, err := s.repo.CountSubscriptionsCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active, err := s.repo.CountEffectivelyActive(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	paused, err := s.repo.CountPaused(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	mrr, err := s.repo.SumActiveTotalPrice(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	reactivations, err := s.repo.CountReactivations(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("collected dashboard metrics",
		slog.Time("start", start), slog.Time("end", end))

	return &models.DashboardMetrics{
		NewSubscriptions:        newSubs,
		ActiveSubscriptions:     active,
		PausedSubscriptions:     paused,
		MonthlyRecurringRevenue: mrr,
		Reactivations:           reactivations,
		DateRangeStart:          start,
		DateRangeEnd:            end,
	}, nil
}
