package userhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vpetrukhin/user-hub/internal/http/handlers/health"
	subcreate "github.com/vpetrukhin/user-hub/internal/http/handlers/subscription/create"
	sublist "github.com/vpetrukhin/user-hub/internal/http/handlers/subscription/list"
	subread "github.com/vpetrukhin/user-hub/internal/http/handlers/subscription/read"
	subremove "github.com/vpetrukhin/user-hub/internal/http/handlers/subscription/remove"
	subupdate "github.com/vpetrukhin/user-hub/internal/http/handlers/subscription/update"
	userfilter "github.com/vpetrukhin/user-hub/internal/http/handlers/user/filter"
	userlist "github.com/vpetrukhin/user-hub/internal/http/handlers/user/list"
	"github.com/vpetrukhin/user-hub/internal/http/handlers/user/login"
	userread "github.com/vpetrukhin/user-hub/internal/http/handlers/user/read"
	"github.com/vpetrukhin/user-hub/internal/http/handlers/user/refresh"
	"github.com/vpetrukhin/user-hub/internal/http/handlers/user/register"
	userremove "github.com/vpetrukhin/user-hub/internal/http/handlers/user/remove"
	userupdate "github.com/vpetrukhin/user-hub/internal/http/handlers/user/update"
	"github.com/vpetrukhin/user-hub/internal/http/middlewarectx"
	authservice "github.com/vpetrukhin/user-hub/internal/services/auth"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
	userservice "github.com/vpetrukhin/user-hub/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	subscriptionService *subservice.SubscriptionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/user/register/", register.New(logger, authService).ServeHTTP)
		r.Post("/user/login", login.New(logger, authService).ServeHTTP)
		r.Post("/user/token/refresh", refresh.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/user/{user_uuid}", userread.New(logger, userService).ServeHTTP)
			r.Get("/users/", userlist.New(logger, userService).ServeHTTP)
			r.Post("/users/filter/", userfilter.New(logger, userService).ServeHTTP)
			r.Patch("/user/update/", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/user/delete/{user_uuid}", userremove.New(logger, userService).ServeHTTP)

			r.Get("/user/subscription/{user_uuid}", subread.New(logger, subscriptionService).ServeHTTP)
			r.Get("/user/subscriptions/", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/user/subscription/", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Patch("/user/subscription/", subupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/user/subscription/{user_uuid}", subremove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Get("/health", health.New())
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
