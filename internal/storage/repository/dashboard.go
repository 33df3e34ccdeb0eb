package repository

import (
	"context"
	"fmt"
	"time"
)

// Условие "фактически активна" повторяет предикат
// models.Subscription.EffectivelyActive для агрегирующих запросов:
// подписка активна и дата запроса вне окна паузы.
const effectivelyActiveCond = `is_active AND (
		pause_start_date IS NULL
		OR $1::date < pause_start_date
		OR $1::date > pause_end_date
	)`

// CountSubscriptionsCreatedBetween считает подписки, созданные в периоде
// [start, end] включительно по датам.
func (s *Storage) CountSubscriptionsCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	const op = "storage.CountSubscriptionsCreatedBetween"
	query := `SELECT COUNT(*) FROM subscriptions
			  WHERE created_at >= $1::date
			    AND created_at < $2::date + INTERVAL '1 day'`
	return s.queryCount(ctx, op, query, start, end)
}

// CountEffectivelyActive считает подписки, действующие на дату today.
func (s *Storage) CountEffectivelyActive(ctx context.Context, today time.Time) (int, error) {
	const op = "storage.CountEffectivelyActive"
	query := `SELECT COUNT(*) FROM subscriptions WHERE ` + effectivelyActiveCond
	return s.queryCount(ctx, op, query, today)
}

// CountPaused считает активные подписки, находящиеся в окне паузы на дату today.
func (s *Storage) CountPaused(ctx context.Context, today time.Time) (int, error) {
	const op = "storage.CountPaused"
	query := `SELECT COUNT(*) FROM subscriptions
			  WHERE is_active
			    AND pause_start_date IS NOT NULL
			    AND pause_start_date <= $1::date
			    AND pause_end_date >= $1::date`
	return s.queryCount(ctx, op, query, today)
}

// SumActiveTotalPrice возвращает MRR: сумму total_price по подпискам,
// действующим на дату today.
func (s *Storage) SumActiveTotalPrice(ctx context.Context, today time.Time) (float64, error) {
	const op = "storage.SumActiveTotalPrice"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(total_price), 0) FROM subscriptions WHERE ` + effectivelyActiveCond
	var sum float64
	if err := s.DB.QueryRowContext(ctx, query, today).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return sum, nil
}

// CountReactivations считает активные подписки, обновлённые в периоде.
// Приближение по updated_at: журнала переходов состояний нет.
func (s *Storage) CountReactivations(ctx context.Context, start, end time.Time) (int, error) {
	const op = "storage.CountReactivations"
	query := `SELECT COUNT(*) FROM subscriptions
			  WHERE is_active
			    AND updated_at >= $1::date
			    AND updated_at < $2::date + INTERVAL '1 day'`
	return s.queryCount(ctx, op, query, start, end)
}

func (s *Storage) queryCount(ctx context.Context, op, query string, args ...any) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
