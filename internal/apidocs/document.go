// Package apidocs builds an OpenAPI 3.0 document from the mounted chi routes
// and serves it as JSON, YAML and a browsable UI.
package apidocs

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-gateway/internal/config"
)

// OpenAPIVersion is the version of the emitted document format.
const OpenAPIVersion = "3.0.3"

// Document is an OpenAPI document without schemas.
type Document struct {
	OpenAPI string              `json:"openapi" yaml:"openapi"`
	Info    Info                `json:"info" yaml:"info"`
	Paths   map[string]PathItem `json:"paths" yaml:"paths"`
}

type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

type Operation struct {
	OperationID string              `json:"operationId" yaml:"operationId"`
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string            `json:"name" yaml:"name"`
	In       string            `json:"in" yaml:"in"`
	Required bool              `json:"required" yaml:"required"`
	Schema   map[string]string `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string `json:"description" yaml:"description"`
}

// routeParam matches chi parameters, optionally carrying a regexp: {id} or {id:[0-9]+}.
var routeParam = regexp.MustCompile(`\{([^}:]+)(:[^}]*)?\}`)

// Build walks routes and returns the document for every route whose pattern
// fully matches cfg.DefaultIncludePattern. Wildcard routes are skipped.
func Build(routes chi.Routes, cfg config.Swagger) (Document, error) {
	include, err := regexp.Compile("^(?:" + cfg.DefaultIncludePattern + ")$")
	if err != nil {
		return Document{}, fmt.Errorf("invalid include pattern: %w", err)
	}

	doc := Document{
		OpenAPI: OpenAPIVersion,
		Info: Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
		Paths: make(map[string]PathItem),
	}

	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = normalizeRoute(route)
		if strings.Contains(route, "*") || !include.MatchString(route) {
			return nil
		}

		path := routeParam.ReplaceAllString(route, "{$1}")
		item, ok := doc.Paths[path]
		if !ok {
			item = make(PathItem)
			doc.Paths[path] = item
		}
		item[strings.ToLower(method)] = newOperation(method, path)
		return nil
	})
	if err != nil {
		return Document{}, fmt.Errorf("walking routes: %w", err)
	}

	return doc, nil
}

// normalizeRoute drops the trailing slash chi keeps on mounted sub-routers.
func normalizeRoute(route string) string {
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	return strings.ReplaceAll(route, "/*/", "/")
}

func newOperation(method, path string) Operation {
	op := Operation{
		OperationID: operationID(method, path),
		Responses: map[string]Response{
			"200": {Description: "OK"},
		},
	}

	if segments := strings.Split(strings.Trim(path, "/"), "/"); len(segments) > 1 {
		op.Tags = []string{segments[1]}
	}

	for _, m := range routeParam.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     m[1],
			In:       "path",
			Required: true,
			Schema:   map[string]string{"type": "string"},
		})
	}
	return op
}

// operationID derives a stable camel-case id such as "getApiAccount".
func operationID(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, part := range strings.FieldsFunc(path, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}
