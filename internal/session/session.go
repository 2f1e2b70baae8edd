// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session binds server-side sessions to browsers through the
// SESSION cookie, on top of scs.
//
// Every request gets a session. A request without a valid cookie starts a
// new one, which is stored and whose cookie is set on the first response.
// Session data lives in a [store.SessionRepository]; the cookie only carries
// the random token.
package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/MKhiriev/go-gateway/models"
)

// CookieName is the name of the session cookie.
const CookieName = "SESSION"

const (
	createdAtKey = "created_at"
	userKey      = "user"
)

func init() {
	// session values are gob-encoded by scs
	gob.Register(models.User{})
}

// Manager loads, creates and persists sessions.
type Manager struct {
	scs    *scs.SessionManager
	logger *logger.Logger
}

// NewManager returns a Manager over the given store configured by
// jhipster.security.session.*. Sessions expire MaxAge after creation.
func NewManager(sessions store.SessionRepository, cfg config.Session, log *logger.Logger) *Manager {
	sm := scs.New()
	sm.Store = NewStore(sessions)
	sm.Lifetime = cfg.MaxAge
	sm.IdleTimeout = 0

	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = false
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = true

	sm.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.FromRequest(r).Err(err).Str("func", "*Manager.Middleware").Msg("session store error")
		utils.WriteProblem(w, r, http.StatusInternalServerError, "")
	}

	return &Manager{scs: sm, logger: log}
}

// Middleware attaches the request's session to the context. New sessions
// are stored even when the handler puts nothing in them; existing sessions
// are written back only when modified.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return m.scs.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if m.scs.Token(ctx) == "" {
			m.scs.Put(ctx, createdAtKey, time.Now().UTC().Unix())
		}
		next.ServeHTTP(w, r)
	}))
}

// Put stores value under key in the request's session.
func (m *Manager) Put(ctx context.Context, key string, value any) {
	m.scs.Put(ctx, key, value)
}

// PopString returns the string stored under key and removes it. It returns
// "" when the key is absent.
func (m *Manager) PopString(ctx context.Context, key string) string {
	return m.scs.PopString(ctx, key)
}

// Login binds user to the session under a fresh token, so that a token
// issued before authentication cannot be reused afterwards.
func (m *Manager) Login(ctx context.Context, user models.User) error {
	if err := m.scs.RenewToken(ctx); err != nil {
		return err
	}
	m.scs.Put(ctx, userKey, user)
	return nil
}

// User returns the authenticated user of the request's session, or nil.
func (m *Manager) User(ctx context.Context) *models.User {
	user, ok := m.scs.Get(ctx, userKey).(models.User)
	if !ok {
		return nil
	}
	return &user
}

// Destroy deletes the request's session from the store. The cookie is
// expired when the response is written.
func (m *Manager) Destroy(ctx context.Context) error {
	return m.scs.Destroy(ctx)
}

// Expiry returns the absolute expiry of the request's session.
func (m *Manager) Expiry(ctx context.Context) time.Time {
	return m.scs.Deadline(ctx)
}
