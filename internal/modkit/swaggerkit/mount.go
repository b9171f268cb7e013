// Package swaggerkit serves the OpenAPI document and Swagger UI under /api/docs
package swaggerkit

import (
	"net/http"

	phttp "spedicija/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsBase = "/api/docs"
	docPath  = docsBase + "/doc.json"
)

// Mount registers the UI and the document when enabled; ms run on every document request
func Mount(r phttp.Router, enabled bool, ms ...SpecMutator) {
	if !enabled {
		return
	}
	r.Get(docsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsBase+"/", http.StatusPermanentRedirect)
	})
	r.Get(docPath, serveDocJSON(ms...))
	r.Handle(docsBase+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("spedicija"),
		httpSwagger.URL(docPath),
		httpSwagger.DocExpansion("list"),
	))
}
