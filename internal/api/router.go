package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/usersvc/accounts-api/internal/api/middleware"
	"github.com/usersvc/accounts-api/internal/service"
	"github.com/usersvc/accounts-api/internal/service/auth"
)

// NewRouter builds the application router with all routes and
// middleware registered.
func NewRouter(accounts service.AccountService, jwtService auth.JWTService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	accountHandler := NewAccountHandler(accounts)
	authHandler := NewAuthHandler(accounts, jwtService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Account management endpoints
		r.Get("/users", accountHandler.List)
		r.Post("/users", accountHandler.Create)
		r.Get("/users/{id}", accountHandler.GetByID)
		r.Put("/users/{id}", accountHandler.Update)
		r.Delete("/users/{id}", accountHandler.Delete)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/users/me", accountHandler.Me)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
