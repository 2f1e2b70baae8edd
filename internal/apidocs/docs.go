package apidocs

import (
	"encoding/json"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/internal/utils"
)

const (
	// JSONPath serves the raw document.
	JSONPath = "/v3/api-docs"
	// YAMLPath serves the document as YAML.
	YAMLPath = "/v3/api-docs.yaml"
)

var uiTemplate = template.Must(template.New("ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: {{.DocURL}}, dom_id: '#swagger-ui' });
  </script>
</body>
</html>
`))

// Docs serves the API document. It is built from the router on the first
// request, once every route has been mounted.
type Docs struct {
	routes chi.Routes
	cfg    config.Swagger

	once     sync.Once
	jsonBody []byte
	yamlBody []byte
	err      error

	logger *logger.Logger
}

// New returns Docs for the given router.
func New(routes chi.Routes, cfg config.Swagger, log *logger.Logger) *Docs {
	return &Docs{
		routes: routes,
		cfg:    cfg,
		logger: log,
	}
}

func (d *Docs) build() {
	d.once.Do(func() {
		doc, err := Build(d.routes, d.cfg)
		if err != nil {
			d.err = err
			return
		}
		if d.jsonBody, d.err = json.Marshal(doc); d.err != nil {
			return
		}
		d.yamlBody, d.err = yaml.Marshal(doc)
		d.logger.Debug().Int("paths", len(doc.Paths)).Msg("api document built")
	})
}

// ServeJSON writes the document as application/json.
func (d *Docs) ServeJSON(w http.ResponseWriter, r *http.Request) {
	d.serve(w, r, "application/json", func() []byte { return d.jsonBody })
}

// ServeYAML writes the document as application/yaml.
func (d *Docs) ServeYAML(w http.ResponseWriter, r *http.Request) {
	d.serve(w, r, "application/yaml", func() []byte { return d.yamlBody })
}

func (d *Docs) serve(w http.ResponseWriter, r *http.Request, contentType string, body func() []byte) {
	d.build()
	if d.err != nil {
		logger.FromRequest(r).Err(d.err).Msg("error building api document")
		utils.WriteProblem(w, r, http.StatusInternalServerError, "api document is unavailable")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body())
}

// ServeUI writes the documentation page that loads the JSON document.
func (d *Docs) ServeUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := uiTemplate.Execute(w, struct {
		Title  string
		DocURL string
	}{
		Title:  d.cfg.Title,
		DocURL: JSONPath,
	})
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error rendering api documentation page")
	}
}
