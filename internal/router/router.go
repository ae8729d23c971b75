package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cvan-em/artsnetwork/internal/middleware/metrics"
	"github.com/cvan-em/artsnetwork/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	// CORS for the public site frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.GetEvents)
			r.Post("/submit", h.SubmitEvent)
			r.Get("/{slug}", h.GetEvent)
		})

		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", h.GetOpportunities)
			r.Post("/submit", h.SubmitOpportunity)
			r.Get("/{slug}", h.GetOpportunity)
		})

		r.Route("/activity", func(r chi.Router) {
			r.Get("/", h.GetActivity)
			r.Get("/archived", h.GetArchivedActivity)
			r.Get("/tag/{tag}", h.GetActivityByTag)
			r.Get("/{slug}", h.GetActivityArticle)
		})

		r.Get("/team", h.GetTeam)
		r.Get("/project-tags", h.GetProjectTags)
		r.Get("/pages/{name}", h.GetPage)

		r.Post("/webhooks/status", h.StatusWebhook)
	})

	return r
}
