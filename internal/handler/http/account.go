package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/app"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.User(r.Context())
	if user == nil {
		utils.WriteProblem(w, r, http.StatusUnauthorized, app.MsgNotAuthenticated)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.sessions.Destroy(r.Context()); err != nil {
		log.Err(err).Msg("error destroying session")
		utils.WriteProblem(w, r, http.StatusInternalServerError, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
