package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// RegisterDocsRoutes serves the API contract next to the dispute routes:
// a Swagger UI at /docs, the resolved document as JSON at /docs/openapi and
// the embedded source at /docs/openapi.yaml. The JSON is rendered once here.
func RegisterDocsRoutes(mux *http.ServeMux, doc *openapi3.T) error {
	rendered, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render OpenAPI document: %w", err)
	}

	mux.Handle("GET /{$}", http.RedirectHandler("/docs", http.StatusMovedPermanently))
	mux.Handle("GET /docs", staticDoc("text/html; charset=utf-8", []byte(swaggerUIHTML)))
	mux.Handle("GET /docs/openapi", staticDoc("application/json", rendered))
	mux.Handle("GET /docs/openapi.yaml", staticDoc("application/yaml", openAPISpec))
	return nil
}

func staticDoc(contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body) //nolint:errcheck // nothing to do if the client is gone
	})
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Dispute Resolution API - Swagger UI</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-standalone-preset.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({
        url: '/docs/openapi',
        dom_id: '#swagger-ui',
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        layout: 'StandaloneLayout'
      });
    };
  </script>
</body>
</html>`
