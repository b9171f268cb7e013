package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"spedicija/internal/core/version"
)

//go:embed openapi.json
var openapiDoc []byte

// SpecMutator tweaks the parsed document before it is served
type SpecMutator func(map[string]any)

// docReader is a seam so tests can inject invalid JSON
var docReader = func() []byte { return openapiDoc }

// WithModel stamps the serving model into info as x-model
func WithModel(name, ver string) SpecMutator {
	return func(spec map[string]any) {
		if info, ok := spec["info"].(map[string]any); ok {
			info["x-model"] = map[string]any{"name": name, "version": ver}
		}
	}
}

// serveDocJSON serves the OpenAPI document with the shared error responses filled in
func serveDocJSON(mutators ...SpecMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal(docReader(), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		if info, ok := spec["info"].(map[string]any); ok {
			info["version"] = version.Info().Version
		}
		ensureErrorResponseDefinition(spec)
		addDefaultResponse(spec, "500", "Internal Server Error", map[string]any{
			"status_code": 500,
			"status":      "Internal Server Error",
			"code":        1,
			"error":       "panic recovered",
			"request_id":  "host/abc-000001",
		})

		for _, m := range mutators {
			if m != nil {
				m(spec)
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureErrorResponseDefinition creates the error envelope schema if missing
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse walks every operation and injects status if absent
func addDefaultResponse(spec map[string]any, status, desc string, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
