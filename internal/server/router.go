package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"hr-interview-backend/internal/api"
	"hr-interview-backend/internal/audit"
	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/session"
)

// NewRouter собирает HTTP-маршрутизатор бэкенда интервью
func NewRouter(sessions *session.Service, ai *api.OpenAIClient, m *metrics.Metrics, events *audit.Log, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	h := NewHandler(sessions, ai, m, events, log)

	r.Route("/api", func(apiRouter chi.Router) {
		h.RegisterRoutes(apiRouter)
	})
	r.Route("/admin", func(adminRouter chi.Router) {
		h.RegisterAdminRoutes(adminRouter)
	})

	return r
}
