package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/auth"
	"github.com/MKhiriev/go-gateway/internal/service"
	"github.com/MKhiriev/go-gateway/internal/store"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

var errorStatusMap = map[error]int{
	auth.ErrStateMismatch: http.StatusBadRequest,
	auth.ErrMissingCode:   http.StatusBadRequest,
	auth.ErrProviderError: http.StatusUnauthorized,

	utils.ErrInvalidIDToken:  http.StatusUnauthorized,
	service.ErrInvalidClaims: http.StatusUnauthorized,

	adapter.ErrBadRequest:        http.StatusBadGateway,
	adapter.ErrUnauthorized:      http.StatusUnauthorized,
	adapter.ErrPermissionDenied:  http.StatusForbidden,
	adapter.ErrNotFound:          http.StatusBadGateway,
	adapter.ErrUnavailable:       http.StatusServiceUnavailable,
	adapter.ErrMalformedResponse: http.StatusBadGateway,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrSessionNotFound:    http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrEncodingSession:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
