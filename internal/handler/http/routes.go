package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/apidocs"
	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	managementHealthPath     = "/management/health"
	managementInfoPath       = "/management/info"
	managementPrometheusPath = "/management/prometheus"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withTracing)
	router.Use(h.withMetrics)
	router.Use(h.withLogging)
	router.Use(h.withRateLimit)
	router.Use(h.withCORS)

	// management endpoints are polled by the registry and scrapers, so they
	// run without sessions
	router.Get(managementHealthPath, h.getHealth)
	router.Get(managementInfoPath, h.getInfo)
	router.Get(managementPrometheusPath, h.metrics.handler().ServeHTTP)

	docs := apidocs.New(router, h.cfg.Swagger, h.logger)

	router.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware)
		r.Use(h.withSwaggerGuard)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Get(h.cfg.Swagger.Path, docs.ServeUI)
			r.Get(apidocs.JSONPath, docs.ServeJSON)
			r.Get(apidocs.YAMLPath, docs.ServeYAML)
		})

		r.Get(auth.LoginPath, h.login)
		r.Get(auth.CallbackPath, h.callback)

		r.Get("/api/account", h.getAccount)
		r.Post("/api/logout", h.logout)

		h.mountClient(r)
	})

	// unmatched paths get a session too, so anonymous requests below the
	// documentation path are sent to login instead of answering 404
	router.NotFound(h.sessions.Middleware(h.withSwaggerGuard(http.HandlerFunc(notFound))).ServeHTTP)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteProblem(w, r, http.StatusNotFound, "")
}
