package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/GophCards/internal/middleware"
)

// HealthPath is served without a bearer token.
const HealthPath = "/api/health"

// NewRouter builds the card API.
//
// Middleware chain (applied in order):
//  1. RequestID          - tags each request for the log
//  2. WithRequestLogging - logs incoming requests
//  3. Recoverer          - turns handler panics into 500
//  4. BearerAuth         - enforces the JWT session, except on HealthPath
//
// Mutating card routes additionally only accept application/json bodies.
func NewRouter(
	cardHandler *CardHandler,
	profileHandler *ProfileHandler,
	secret []byte,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.BearerAuth(secret, HealthPath))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)
		r.Get("/me", profileHandler.Me)
		r.Get("/catalog", Catalog)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListActive)
			r.Get("/deleted", cardHandler.ListDeleted)
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/", cardHandler.Create)
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/preview", cardHandler.Preview)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cardHandler.Get)
				r.Delete("/", cardHandler.SoftDelete)
				r.Post("/restore", cardHandler.Restore)
				r.Delete("/purge", cardHandler.Purge)
			})
		})
	})

	return r
}
