// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gunzip(t *testing.T, body io.Reader) string {
	t.Helper()

	reader, err := gzip.NewReader(body)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}

func TestGZip(t *testing.T) {
	tests := []struct {
		name                 string
		method               string
		acceptEncoding       string
		handlerStatus        int
		handlerBody          string
		expectedStatus       int
		expectedResponseBody string
		checkResponseGzipped bool
	}{
		{
			name:                 "compress response when client accepts gzip",
			acceptEncoding:       "gzip",
			handlerStatus:        http.StatusOK,
			handlerBody:          "Hello, World!",
			expectedStatus:       http.StatusOK,
			expectedResponseBody: "Hello, World!",
			checkResponseGzipped: true,
		},
		{
			name:                 "no compression when client doesn't accept gzip",
			handlerStatus:        http.StatusOK,
			handlerBody:          "Hello, World!",
			expectedStatus:       http.StatusOK,
			expectedResponseBody: "Hello, World!",
		},
		{
			name:                 "accept-encoding with multiple values including gzip",
			acceptEncoding:       "deflate, gzip, br",
			handlerStatus:        http.StatusOK,
			handlerBody:          "Hello, World!",
			expectedStatus:       http.StatusOK,
			expectedResponseBody: "Hello, World!",
			checkResponseGzipped: true,
		},
		{
			name:                 "gzip refused with zero quality",
			acceptEncoding:       "gzip;q=0, identity",
			handlerStatus:        http.StatusOK,
			handlerBody:          "Hello, World!",
			expectedStatus:       http.StatusOK,
			expectedResponseBody: "Hello, World!",
		},
		{
			name:                 "error responses are compressed too",
			acceptEncoding:       "gzip",
			handlerStatus:        http.StatusInternalServerError,
			handlerBody:          "boom",
			expectedStatus:       http.StatusInternalServerError,
			expectedResponseBody: "boom",
			checkResponseGzipped: true,
		},
		{
			name:           "no content is never compressed",
			acceptEncoding: "gzip",
			handlerStatus:  http.StatusNoContent,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "not modified is never compressed",
			acceptEncoding: "gzip",
			handlerStatus:  http.StatusNotModified,
			expectedStatus: http.StatusNotModified,
		},
		{
			name:                 "HEAD passes through",
			method:               http.MethodHead,
			acceptEncoding:       "gzip",
			handlerStatus:        http.StatusOK,
			expectedStatus:       http.StatusOK,
			expectedResponseBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Header().Set("Content-Length", "13")
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerBody != "" {
					_, _ = w.Write([]byte(tt.handlerBody))
				}
			}))

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req := httptest.NewRequest(method, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.checkResponseGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Empty(t, rr.Header().Get("Content-Length"))
				assert.Equal(t, tt.expectedResponseBody, gunzip(t, rr.Body))
				return
			}

			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.expectedResponseBody, rr.Body.String())
		})
	}
}

func TestGZip_VaryHeader(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
}

func TestGZip_ImplicitStatusSniffsContentType(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>docs</body></html>"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, gunzip(t, rr.Body), "docs")
}

func TestGZip_AlreadyEncodedResponse(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("raw"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "br", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "raw", rr.Body.String())
}

func TestGZip_CompressionRatio(t *testing.T) {
	largeBody := strings.Repeat("This is a test string that should compress well. ", 100)

	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(largeBody))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Less(t, rr.Body.Len(), len(largeBody))
	assert.Equal(t, largeBody, gunzip(t, rr.Body))
}

func TestGZip_ConcurrentRequests(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Query().Get("n")))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			value := strings.Repeat("x", n+1)
			req := httptest.NewRequest(http.MethodGet, "/?n="+value, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			reader, err := gzip.NewReader(rr.Body)
			if !assert.NoError(t, err) {
				return
			}
			data, err := io.ReadAll(reader)
			assert.NoError(t, err)
			assert.Equal(t, value, string(data))
		}(i)
	}
	wg.Wait()
}

func TestGZip_EmptyResponse(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Empty(t, rr.Body.String())
}

func TestAcceptsGzip(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{header: "", want: false},
		{header: "gzip", want: true},
		{header: "GZIP", want: true},
		{header: "br, deflate", want: false},
		{header: "gzip;q=1.0, identity;q=0.5", want: true},
		{header: "gzip; q=0", want: false},
		{header: "x-gzip", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptsGzip(tt.header))
		})
	}
}
