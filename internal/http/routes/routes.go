package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/hello-stub/internal/http/health"
	"github.com/janisto/hello-stub/internal/http/root"
)

// DocsPath is where the generated API reference is served when docs are enabled.
const DocsPath = "/docs"

// NewAPI mounts a huma API on router. Response bodies carry exactly the fields
// of their Go type: the schema link transformer that would add $schema is not
// installed. With docs disabled no /docs, /openapi or /schemas routes exist.
func NewAPI(router chi.Router, title, version string, docs bool) huma.API {
	cfg := huma.DefaultConfig(title, version)
	cfg.CreateHooks = nil
	if docs {
		cfg.DocsPath = DocsPath
	} else {
		cfg.DocsPath = ""
		cfg.OpenAPIPath = ""
		cfg.SchemasPath = ""
	}
	api := humachi.New(router, cfg)

	// Advertise CBOR next to JSON for every response in the OpenAPI document.
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
	return api
}

// Register wires the service routes. The health probe is mounted on the chi
// router directly so it never goes through huma's content negotiation.
func Register(router chi.Router, api huma.API) {
	router.Get("/health", health.Handler)
	root.Register(api)
}
