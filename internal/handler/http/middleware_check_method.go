// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
	"github.com/go-chi/chi/v5"
)

// probedMethods are the methods checked when reporting which ones a path
// does serve.
var probedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CheckHTTPMethod returns the handler registered with
// [chi.Mux.MethodNotAllowed]. A path that exists under other methods answers
// 404 Not Found instead of chi's 405, so callers cannot probe which methods a
// route serves. The served methods are only logged.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var served []string
		for _, method := range probedMethods {
			if method != r.Method && router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				served = append(served, method)
			}
		}

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Strs("served_methods", served).
			Msg("method is not served for this path")

		utils.WriteProblem(w, r, http.StatusNotFound, "")
	}
}
