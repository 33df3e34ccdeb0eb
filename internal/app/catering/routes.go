// Package catering предоставляет маршруты для основного приложения.
package catering

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/promote"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/updateme"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/userlist"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/auth/usersetactive"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/dashboard/metrics"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/health"
	mealplancreate "github.com/magabrotheeeer/catering-backend/internal/http/handlers/mealplan/create"
	mealplanlist "github.com/magabrotheeeer/catering-backend/internal/http/handlers/mealplan/list"
	mealplanread "github.com/magabrotheeeer/catering-backend/internal/http/handlers/mealplan/read"
	mealplanremove "github.com/magabrotheeeer/catering-backend/internal/http/handlers/mealplan/remove"
	mealplanupdate "github.com/magabrotheeeer/catering-backend/internal/http/handlers/mealplan/update"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/calculateprice"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/deactivate"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/pause"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/catering-backend/internal/http/handlers/subscription/resume"
	testimonialapprove "github.com/magabrotheeeer/catering-backend/internal/http/handlers/testimonial/approve"
	testimonialcreate "github.com/magabrotheeeer/catering-backend/internal/http/handlers/testimonial/create"
	testimoniallist "github.com/magabrotheeeer/catering-backend/internal/http/handlers/testimonial/list"
	testimonialremove "github.com/magabrotheeeer/catering-backend/internal/http/handlers/testimonial/remove"
	"github.com/magabrotheeeer/catering-backend/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/catering-backend/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/catering-backend/internal/services/dashboard"
	mealplanservice "github.com/magabrotheeeer/catering-backend/internal/services/mealplan"
	subscriptionservice "github.com/magabrotheeeer/catering-backend/internal/services/subscription"
	testimonialservice "github.com/magabrotheeeer/catering-backend/internal/services/testimonial"
	"github.com/magabrotheeeer/catering-backend/internal/storage/repository"
)

// Services собирает бизнес-сервисы, необходимые маршрутам.
type Services struct {
	Auth         *authservice.Service
	Subscription *subscriptionservice.Service
	Dashboard    *dashboardservice.Service
	Testimonial  *testimonialservice.Service
	MealPlan     *mealplanservice.Service
	Storage      *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/testimonials", testimoniallist.NewApproved(logger, s.Testimonial).ServeHTTP)
		r.Get("/meal-plans", mealplanlist.New(logger, s.MealPlan).ServeHTTP)
		r.Get("/meal-plans/{id}", mealplanread.New(logger, s.MealPlan).ServeHTTP)
		r.Post("/subscriptions/calculate-price", calculateprice.New(logger, s.Subscription).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", logout.New(logger).ServeHTTP)
			r.Get("/auth/me", me.New(logger).ServeHTTP)
			r.Put("/auth/me", updateme.New(logger, s.Auth).ServeHTTP)

			r.Post("/subscriptions", create.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", list.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}/pause", pause.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}/resume", resume.New(logger, s.Subscription).ServeHTTP)
			r.Put("/subscriptions/{id}/deactivate", deactivate.New(logger, s.Subscription).ServeHTTP)

			r.Post("/testimonials", testimonialcreate.New(logger, s.Testimonial).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))

				r.Get("/auth/users", userlist.New(logger, s.Auth).ServeHTTP)
				r.Put("/auth/users/{uid}/activate", usersetactive.NewActivate(logger, s.Auth).ServeHTTP)
				r.Put("/auth/users/{uid}/deactivate", usersetactive.NewDeactivate(logger, s.Auth).ServeHTTP)
				r.Put("/auth/users/{uid}/make-admin", promote.New(logger, s.Auth).ServeHTTP)

				r.Get("/dashboard/admin/metrics", metrics.New(logger, s.Dashboard).ServeHTTP)

				r.Get("/testimonials/all", testimoniallist.NewAll(logger, s.Testimonial).ServeHTTP)
				r.Put("/testimonials/{id}/approve", testimonialapprove.New(logger, s.Testimonial).ServeHTTP)
				r.Delete("/testimonials/{id}", testimonialremove.New(logger, s.Testimonial).ServeHTTP)

				r.Post("/meal-plans", mealplancreate.New(logger, s.MealPlan).ServeHTTP)
				r.Put("/meal-plans/{id}", mealplanupdate.New(logger, s.MealPlan).ServeHTTP)
				r.Delete("/meal-plans/{id}", mealplanremove.New(logger, s.MealPlan).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
