package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/techwithgen-io/beginner-ai-projects/internal/handlers"
	"github.com/techwithgen-io/beginner-ai-projects/internal/middleware"
)

func New(deckHandler *handlers.DeckHandler, studyHandler *handlers.StudyHandler, frontendURL string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{frontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler)

	// Generation calls the model API; keep the budget small.
	generateThrottle := middleware.NewThrottle(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Get("/topics", deckHandler.Topics)
		r.Get("/stats", studyHandler.Stats)

		// ──── Deck Routes ────
		r.Route("/decks", func(r chi.Router) {
			r.With(generateThrottle.Middleware).Post("/generate", deckHandler.Generate)
			r.Get("/", deckHandler.List)
			r.Get("/{id}", deckHandler.Get)
			r.Get("/{id}/export", deckHandler.ExportCSV)
			r.Delete("/{id}", deckHandler.Delete)
		})

		// ──── Study Routes ────
		r.Route("/study", func(r chi.Router) {
			r.Post("/select", studyHandler.Select)
			r.Get("/", studyHandler.Current)
			r.Post("/reveal", studyHandler.Reveal)
			r.Post("/next", studyHandler.Next)
			r.Post("/prev", studyHandler.Prev)
			r.Post("/master", studyHandler.Master)
			r.Post("/exit", studyHandler.Exit)
		})
	})

	return r
}
