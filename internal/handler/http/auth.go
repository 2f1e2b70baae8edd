package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/app"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

// afterLoginPath is where the browser lands once the callback succeeded.
const afterLoginPath = "/"

// login starts the authorization-code flow: the state goes into the session,
// which is committed with the redirect response.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.auth == nil {
		log.Warn().Msg("login requested but no identity provider is configured")
		utils.WriteProblem(w, r, http.StatusServiceUnavailable, app.MsgLoginNotConfigured)
		return
	}

	authURL, err := h.auth.Begin(ctx, h.sessions)
	if err != nil {
		log.Err(err).Msg("error starting login")
		utils.WriteProblem(w, r, statusFromError(err), app.MsgIdentityProviderUnavailable)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// callback completes the flow started by login and binds the user to the
// session.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.auth == nil {
		utils.WriteProblem(w, r, http.StatusServiceUnavailable, app.MsgLoginNotConfigured)
		return
	}

	user, err := h.auth.Complete(ctx, h.sessions, r.URL.Query())
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("login callback failed")
		utils.WriteProblem(w, r, status, err.Error())
		return
	}

	log.Debug().Str("login", user.Login).Msg("login completed, redirecting")
	http.Redirect(w, r, afterLoginPath, http.StatusFound)
}
