package apidocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

func noop(http.ResponseWriter, *http.Request) {}

func testRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/account", noop)
	r.Post("/api/logout", noop)
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", noop)
		r.Get("/{login}", noop)
	})
	r.Get("/management/health", noop)
	r.Get("/api/static/*", noop)
	return r
}

func testSwagger() config.Swagger {
	return config.Swagger{
		Title:                 "gateway API",
		Description:           "gateway API documentation",
		Version:               "0.0.1",
		Path:                  "/api/v2/api-docs",
		DefaultIncludePattern: "/api/.*",
	}
}

func TestBuild(t *testing.T) {
	doc, err := Build(testRouter(), testSwagger())
	require.NoError(t, err)

	assert.Equal(t, OpenAPIVersion, doc.OpenAPI)
	assert.Equal(t, Info{Title: "gateway API", Description: "gateway API documentation", Version: "0.0.1"}, doc.Info)

	assert.Len(t, doc.Paths, 4)
	assert.Contains(t, doc.Paths, "/api/account")
	assert.Contains(t, doc.Paths, "/api/logout")
	assert.Contains(t, doc.Paths, "/api/users")
	assert.Contains(t, doc.Paths, "/api/users/{login}")
	assert.NotContains(t, doc.Paths, "/management/health", "excluded by the include pattern")
	assert.NotContains(t, doc.Paths, "/api/static/*", "wildcards are skipped")
	assert.Contains(t, doc.Paths["/api/logout"], "post")

	account := doc.Paths["/api/account"]["get"]
	assert.Equal(t, "getApiAccount", account.OperationID)
	assert.Equal(t, []string{"account"}, account.Tags)
	assert.Equal(t, "OK", account.Responses["200"].Description)
}

func TestBuild_PathParameters(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/users/{login}", noop)
	r.Delete("/api/users/{login}", noop)
	r.Get("/api/items/{id:[0-9]+}", noop)

	doc, err := Build(r, testSwagger())
	require.NoError(t, err)

	item := doc.Paths["/api/users/{login}"]
	require.Contains(t, item, "get")
	require.Contains(t, item, "delete")
	assert.Equal(t, []Parameter{{Name: "login", In: "path", Required: true, Schema: map[string]string{"type": "string"}}},
		item["get"].Parameters)

	require.Contains(t, doc.Paths, "/api/items/{id}")
	assert.Equal(t, "getApiItemsId", doc.Paths["/api/items/{id}"]["get"].OperationID)
}

func TestBuild_IncludePatternIsAnchored(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/account", noop)
	r.Get("/internal/api/secret", noop)

	doc, err := Build(r, testSwagger())
	require.NoError(t, err)
	assert.Equal(t, map[string]PathItem{"/api/account": doc.Paths["/api/account"]}, doc.Paths)
}

func TestBuild_InvalidPattern(t *testing.T) {
	cfg := testSwagger()
	cfg.DefaultIncludePattern = "(["

	_, err := Build(chi.NewRouter(), cfg)
	assert.Error(t, err)
}

func TestDocs_ServeJSONAndYAML(t *testing.T) {
	r := testRouter()
	docs := New(r, testSwagger(), logger.Nop())

	rec := httptest.NewRecorder()
	docs.ServeJSON(rec, httptest.NewRequest(http.MethodGet, JSONPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var fromJSON Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fromJSON))
	assert.Equal(t, "gateway API", fromJSON.Info.Title)
	assert.Contains(t, fromJSON.Paths, "/api/account")

	rec = httptest.NewRecorder()
	docs.ServeYAML(rec, httptest.NewRequest(http.MethodGet, YAMLPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)
}

func TestDocs_BuildError(t *testing.T) {
	cfg := testSwagger()
	cfg.DefaultIncludePattern = "(["
	docs := New(chi.NewRouter(), cfg, logger.Nop())

	rec := httptest.NewRecorder()
	docs.ServeJSON(rec, httptest.NewRequest(http.MethodGet, JSONPath, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestDocs_ServeUI(t *testing.T) {
	docs := New(chi.NewRouter(), testSwagger(), logger.Nop())

	rec := httptest.NewRecorder()
	docs.ServeUI(rec, httptest.NewRequest(http.MethodGet, "/api/v2/api-docs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>gateway API</title>")

	// html/template may or may not escape slashes in script strings, so the
	// argument is decoded before comparing.
	m := uiDocURLPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2, "swagger ui bundle url argument not found")
	var docURL string
	require.NoError(t, json.Unmarshal([]byte(m[1]), &docURL))
	assert.Equal(t, JSONPath, docURL)
}

var uiDocURLPattern = regexp.MustCompile(`url: ("(?:[^"\\]|\\.)*")`)
