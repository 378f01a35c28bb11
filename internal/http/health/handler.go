package health

import (
	"encoding/json"
	"net/http"

	applog "github.com/janisto/hello-stub/internal/platform/logging"
)

// StatusOK is the only status the endpoint reports: if the process can answer, it is alive.
const StatusOK = "ok"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Handler is a plain HTTP handler for liveness and readiness probes. It never
// inspects the request.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Status: StatusOK}); err != nil {
		applog.LogError(r.Context(), "failed to write health response", err)
	}
}
