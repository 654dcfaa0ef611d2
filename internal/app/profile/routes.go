package profile

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/profile-service/docs"
	"github.com/magabrotheeeer/profile-service/internal/config"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/users/create"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/users/login"
	"github.com/magabrotheeeer/profile-service/internal/http/handlers/users/read"
	"github.com/magabrotheeeer/profile-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-service/internal/services/users"
)

// Routes — зависимости, нужные для построения маршрутов.
type Routes struct {
	Log            *slog.Logger
	Users          *users.Service
	Verifier       middlewarectx.Verifier
	Checks         map[string]health.Pinger
	Auth           config.RouteAuth
	RequestTimeout time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, deps Routes) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics,
	)

	auth := middlewarectx.JWTMiddleware(deps.Verifier, deps.Log)
	protect := func(on bool, h http.Handler) http.Handler {
		if on {
			return auth(h)
		}
		return h
	}

	r.Route("/api", func(r chi.Router) {
		if deps.RequestTimeout > 0 {
			r.Use(middleware.Timeout(deps.RequestTimeout))
		}

		r.Post("/users", create.New(deps.Log, deps.Users).ServeHTTP)
		r.Post("/users/login", login.New(deps.Log, deps.Users).ServeHTTP)
		r.Method(http.MethodGet, "/users", protect(deps.Auth.ProtectListUsers, list.New(deps.Log, deps.Users)))
		r.Method(http.MethodGet, "/users/{id}", protect(deps.Auth.ProtectReadUser, read.New(deps.Log, deps.Users)))
	})

	r.Method(http.MethodGet, "/health", health.New(deps.Log, deps.Checks))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
