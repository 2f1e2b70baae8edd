package http

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// mountClient serves the static client application at the root when its
// directory exists.
func (h *Handler) mountClient(r chi.Router) {
	dir := h.cfg.Server.ClientPath
	info, err := os.Stat(dir)
	if dir == "" || err != nil || !info.IsDir() {
		h.logger.Info().Str("client_path", dir).Msg("No client it has been found")
		return
	}

	h.logger.Info().Str("client_path", dir).Msg("serving client application")
	r.With(withGZip).Get("/*", http.FileServer(http.Dir(dir)).ServeHTTP)
}
