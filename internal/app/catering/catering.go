// Package catering собирает HTTP-приложение: хранилище, миграции, кеш,
// очередь уведомлений, бизнес-сервисы и маршруты.
package catering

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/catering-backend/internal/cache"
	"github.com/magabrotheeeer/catering-backend/internal/config"
	"github.com/magabrotheeeer/catering-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/catering-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/migrations"
	authservice "github.com/magabrotheeeer/catering-backend/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/catering-backend/internal/services/dashboard"
	mealplanservice "github.com/magabrotheeeer/catering-backend/internal/services/mealplan"
	"github.com/magabrotheeeer/catering-backend/internal/services/notification"
	subscriptionservice "github.com/magabrotheeeer/catering-backend/internal/services/subscription"
	testimonialservice "github.com/magabrotheeeer/catering-backend/internal/services/testimonial"
	"github.com/magabrotheeeer/catering-backend/internal/storage/repository"
)

// App держит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New инициализирует все зависимости приложения и строит маршрутизатор.
// RabbitMQ необязателен: без него регистрация работает, но приветственные
// письма не отправляются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var (
		rabbitConn *amqp.Connection
		rabbitCh   *amqp.Channel
		notifier   authservice.WelcomeNotifier
	)
	rabbitConn, err = rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, welcome emails disabled", sl.Err(err))
	} else {
		rabbitCh, err = rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
		if err != nil {
			rabbitConn.Close()
			return nil, err
		}
		notifier = notification.NewPublisher(rabbitCh)
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey)

	authService := authservice.New(db, jwtMaker, cfg.TokenTTL, notifier, logger)
	subscriptionService := subscriptionservice.New(db, cacheRedis, logger)
	dashboardService := dashboardservice.New(db, logger)
	testimonialService := testimonialservice.New(db, logger)
	mealplanService := mealplanservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Subscription: subscriptionService,
		Dashboard:    dashboardService,
		Testimonial:  testimonialService,
		MealPlan:     mealplanService,
		Storage:      db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbitCh != nil {
			a.rabbitCh.Close()
		}
		if a.rabbitConn != nil {
			a.rabbitConn.Close()
		}
		a.db.DB.Close()
		return err
	}
}
