// Package subscription содержит бизнес-логику жизненного цикла подписок
// на питание: создание, паузу, возобновление и деактивацию.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/catering-backend/internal/lib/sanitize"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/pricing"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// Допустимые значения приёмов пищи и дней доставки.
var (
	allowedMealTypes = map[string]struct{}{
		"breakfast": {},
		"lunch":     {},
		"dinner":    {},
	}
	allowedDeliveryDays = map[string]struct{}{
		"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
		"friday": {}, "saturday": {}, "sunday": {},
	}
)

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// ReadSubscription возвращает подписку по ID или errs.ErrNotFound.
	ReadSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// ListSubscriptionsByOwner возвращает подписки пользователя.
	ListSubscriptionsByOwner(ctx context.Context, userUID string) ([]*models.Subscription, error)
	// ListAllSubscriptions возвращает все подписки с пагинацией.
	ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
	// PauseSubscription ставит активную подписку без паузы на паузу.
	// Возвращает количество обновлённых строк.
	PauseSubscription(ctx context.Context, id int, start, end time.Time) (int, error)
	// ResumeSubscription снимает паузу с активной подписки.
	ResumeSubscription(ctx context.Context, id int) (int, error)
	// DeactivateSubscription отменяет активную подписку.
	DeactivateSubscription(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с подписками, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time // Источник времени, подменяется в тестах.
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// NewWithClock создаёт Service с заданным источником времени.
func NewWithClock(repo Repository, cache Cache, log *slog.Logger, now func() time.Time) *Service {
	s := New(repo, cache, log)
	s.now = now
	return s
}

// Create создает новую подписку для пользователя, считает итоговую цену
// и кеширует запись. Подписка создаётся активной и без паузы.
func (s *Service) Create(ctx context.Context, ownerUID string, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	const op = "services.subscription.Create"

	if !sanitize.ValidName(req.Name) {
		return nil, errs.Validation("name", "must be 2-100 characters of letters, spaces and common punctuation")
	}
	phone, ok := sanitize.Phone(req.Phone)
	if !ok {
		return nil, errs.Validation("phone", "must contain 10-13 digits")
	}
	if !pricing.ValidPlan(req.Plan) {
		return nil, errs.Validation("plan", "must be one of: diet, protein, royal")
	}
	if err := validateVocabulary("meal_types", req.MealTypes, allowedMealTypes); err != nil {
		return nil, err
	}
	if err := validateVocabulary("delivery_days", req.DeliveryDays, allowedDeliveryDays); err != nil {
		return nil, err
	}

	var allergies *string
	if req.Allergies != "" {
		cleaned := sanitize.Clean(req.Allergies)
		if len(cleaned) > 500 {
			return nil, errs.Validation("allergies", "must be at most 500 characters")
		}
		allergies = &cleaned
	}

	sub := models.Subscription{
		UserUID:      ownerUID,
		Name:         sanitize.Clean(req.Name),
		Phone:        phone,
		Plan:         req.Plan,
		MealTypes:    req.MealTypes,
		DeliveryDays: req.DeliveryDays,
		Allergies:    allergies,
		TotalPrice:   pricing.TotalPrice(req.Plan, req.MealTypes, req.DeliveryDays),
		IsActive:     true,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new subscription", slog.Int("id", id))

	created, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}

	return created, nil
}

// Get возвращает подписку по ID, используя кеш или репозиторий.
// Подписка видна только владельцу и администраторам.
func (s *Service) Get(ctx context.Context, requester *models.User, id int) (*models.Subscription, error) {
	const op = "services.subscription.Get"

	var result *models.Subscription
	cacheKey := fmt.Sprintf("subscription:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if !found || result == nil {
		result, err = s.repo.ReadSubscription(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	if err := requireOwnerOrAdmin(requester, result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListForOwner возвращает подписки пользователя, новые первыми.
func (s *Service) ListForOwner(ctx context.Context, ownerUID string) ([]*models.Subscription, error) {
	const op = "services.subscription.ListForOwner"

	subs, err := s.repo.ListSubscriptionsByOwner(ctx, ownerUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ListAll возвращает все подписки с пагинацией. Доступ ограничен на уровне маршрута.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	const op = "services.subscription.ListAll"

	subs, err := s.repo.ListAllSubscriptions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// Pause ставит подписку на паузу в заданном окне дат. Окно должно начинаться
// не раньше сегодняшнего дня и заканчиваться строго позже начала.
// Условный UPDATE гарантирует, что из двух одновременных пауз победит одна.
func (s *Service) Pause(ctx context.Context, requester *models.User, id int, start, end time.Time) (*models.Subscription, error) {
	const op = "services.subscription.Pause"

	if _, err := s.loadOwned(ctx, op, requester, id); err != nil {
		return nil, err
	}

	today := s.now().Truncate(24 * time.Hour)
	if start.Before(today) {
		return nil, errs.Validation("pause_start_date", "must not be in the past")
	}
	if !end.After(start) {
		return nil, errs.Validation("pause_end_date", "must be after pause_start_date")
	}

	affected, err := s.repo.PauseSubscription(ctx, id, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidState)
	}
	s.log.Info("paused subscription", slog.Int("id", id))

	return s.refresh(ctx, op, id)
}

// Resume снимает паузу с подписки, очищая обе границы окна.
func (s *Service) Resume(ctx context.Context, requester *models.User, id int) (*models.Subscription, error) {
	const op = "services.subscription.Resume"

	if _, err := s.loadOwned(ctx, op, requester, id); err != nil {
		return nil, err
	}

	affected, err := s.repo.ResumeSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidState)
	}
	s.log.Info("resumed subscription", slog.Int("id", id))

	return s.refresh(ctx, op, id)
}

// Deactivate отменяет подписку. Границы окна паузы при этом не трогаются.
func (s *Service) Deactivate(ctx context.Context, requester *models.User, id int) (*models.Subscription, error) {
	const op = "services.subscription.Deactivate"

	if _, err := s.loadOwned(ctx, op, requester, id); err != nil {
		return nil, err
	}

	affected, err := s.repo.DeactivateSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrInvalidState)
	}
	s.log.Info("deactivated subscription", slog.Int("id", id))

	return s.refresh(ctx, op, id)
}

// CalculatePrice считает стоимость подписки без сохранения.
func (s *Service) CalculatePrice(plan string, mealTypes, deliveryDays []string) (float64, error) {
	if !pricing.ValidPlan(plan) {
		return 0, errs.Validation("plan", "must be one of: diet, protein, royal")
	}
	if err := validateVocabulary("meal_types", mealTypes, allowedMealTypes); err != nil {
		return 0, err
	}
	if err := validateVocabulary("delivery_days", deliveryDays, allowedDeliveryDays); err != nil {
		return 0, err
	}
	return pricing.TotalPrice(plan, mealTypes, deliveryDays), nil
}

// loadOwned читает подписку напрямую из репозитория и проверяет права.
// Кеш здесь не используется: мутации должны видеть актуальное состояние.
func (s *Service) loadOwned(ctx context.Context, op string, requester *models.User, id int) (*models.Subscription, error) {
	sub, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := requireOwnerOrAdmin(requester, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// refresh перечитывает подписку после мутации и обновляет кеш.
func (s *Service) refresh(ctx context.Context, op string, id int) (*models.Subscription, error) {
	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}

	sub, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return sub, nil
}

func requireOwnerOrAdmin(requester *models.User, sub *models.Subscription) error {
	if requester == nil {
		return errs.ErrUnauthenticated
	}
	if requester.IsAdmin || requester.UID == sub.UserUID {
		return nil
	}
	return errs.ErrForbidden
}

func validateVocabulary(field string, values []string, allowed map[string]struct{}) error {
	if len(values) == 0 {
		return errs.Validation(field, "must not be empty")
	}
	for _, v := range values {
		if _, ok := allowed[v]; !ok {
			return errs.Validation(field, fmt.Sprintf("unknown value %q", v))
		}
	}
	return nil
}
