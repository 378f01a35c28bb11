package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/hello-stub/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-stub/internal/platform/middleware"
	"github.com/janisto/hello-stub/internal/platform/respond"
)

func newTestRouter(docs bool) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := NewAPI(router, "RoutesTest", "test", docs)
	Register(router, api)
	return router
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return body
}

func TestRegisterRoutes(t *testing.T) {
	router := newTestRouter(true)

	tests := []struct {
		path string
		want map[string]any
	}{
		{"/", map[string]any{"message": "Hello World"}},
		{"/health", map[string]any{"status": "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(chimiddleware.RequestIDHeader, "routes-test")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if got := decodeBody(t, resp); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if _, ok := resp.Header()["Link"]; ok {
				t.Fatalf("did not expect schema Link header, got %q", resp.Header().Get("Link"))
			}
		})
	}
}

func TestDocsRoutes(t *testing.T) {
	tests := []struct {
		name     string
		docs     bool
		path     string
		wantCode int
	}{
		{"docs enabled", true, DocsPath, http.StatusOK},
		{"openapi enabled", true, "/openapi.json", http.StatusOK},
		{"docs disabled", false, DocsPath, http.StatusNotFound},
		{"openapi disabled", false, "/openapi.json", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.docs)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestOpenAPIDocumentsRootOperation(t *testing.T) {
	router := newTestRouter(true)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var doc struct {
		Paths map[string]map[string]struct {
			OperationID string `json:"operationId"`
			Responses   map[string]struct {
				Content map[string]any `json:"content"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	op, ok := doc.Paths["/"]["get"]
	if !ok {
		t.Fatalf("expected GET / in OpenAPI paths, got %v", doc.Paths)
	}
	if op.OperationID != "get-root" {
		t.Fatalf("expected operationId get-root, got %q", op.OperationID)
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatalf("expected application/cbor content on 200 response")
	}
}
