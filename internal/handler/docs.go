package handler

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"html/template"
	"net/http"
)

const specPath = "/docs/openapi.yaml"

// DocsHandler serves the embedded OpenAPI document and a Swagger UI page
// that loads it. The document is tagged with an ETag so tills and browsers
// revalidate instead of downloading it again.
type DocsHandler struct {
	spec []byte
	etag string
	page []byte
}

func NewDocsHandler(spec []byte, version string) *DocsHandler {
	sum := sha256.Sum256(append([]byte(version), spec...))

	var page bytes.Buffer
	err := docsPage.Execute(&page, struct {
		Title   string
		Version string
		SpecURL string
	}{"POS Ledger API", version, specPath})
	if err != nil {
		panic(fmt.Sprintf("render docs page: %v", err))
	}

	return &DocsHandler{
		spec: spec,
		etag: fmt.Sprintf(`"%x"`, sum[:12]),
		page: page.Bytes(),
	}
}

func (h *DocsHandler) Spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", h.etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == h.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(h.spec)
}

func (h *DocsHandler) UI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.page)
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} ({{.Version}})</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: {{.SpecURL}},
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis],
      layout: "BaseLayout"
    });
  </script>
</body>
</html>`))
