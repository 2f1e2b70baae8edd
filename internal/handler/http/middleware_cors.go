package http

import (
	"net/http"
	"slices"
)

const (
	corsAllowMethods  = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders  = "Content-Type,Authorization,X-Requested-With,X-Trace-ID"
	corsExposeHeaders = "X-Trace-ID"
	corsMaxAge        = "86400"
)

// withCORS answers preflight requests and decorates responses for the
// configured origins. "*" allows any origin; the request origin is echoed so
// that cookies can be sent along.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	allowed := h.cfg.Server.CORS.AllowedOrigins
	if len(allowed) == 0 {
		return next
	}
	allowAny := slices.Contains(allowed, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || !(allowAny || slices.Contains(allowed, origin)) {
			next.ServeHTTP(w, r)
			return
		}

		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		header.Add("Vary", "Origin")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			header.Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
