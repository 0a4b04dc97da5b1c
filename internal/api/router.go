// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"parentpoints/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(kidHandler *handler.KidHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/colors", kidHandler.ListColors)
	r.Get("/leaderboard", kidHandler.GetLeaderboard)

	r.Route("/kids", func(r chi.Router) {
		r.Get("/", kidHandler.ListKids)
		r.Post("/", kidHandler.CreateKid)

		r.Route("/{kidID}", func(r chi.Router) {
			r.Get("/", kidHandler.GetKid)
			r.Delete("/", kidHandler.DeleteKid)
			r.Post("/points", kidHandler.AddPoint)
			r.Post("/points/remove", kidHandler.RemovePoint)
			r.Get("/history", kidHandler.GetHistory)
			r.Post("/suggestions", kidHandler.RequestSuggestions)
			r.Get("/suggestions", kidHandler.GetSuggestions)
		})
	})

	logger.Debug("Routes registered")
	return r
}
