package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

// withSwaggerGuard sends anonymous visitors of the documentation UI to the
// login endpoint. It must run after the session middleware.
func (h *Handler) withSwaggerGuard(next http.Handler) http.Handler {
	prefix := h.cfg.Swagger.Path

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if prefix == "" || !strings.HasPrefix(r.URL.Path, prefix) {
			next.ServeHTTP(w, r)
			return
		}
		if h.sessions.User(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Debug().Str("path", r.URL.Path).Msg("anonymous access to api documentation, redirecting to login")
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
	})
}
