package handler

import (
	"context"
	"net/http"

	"github.com/teamplan/teamplan/internal/api/middleware"
	"github.com/teamplan/teamplan/internal/api/response"
)

// DBPinger checks connectivity to the backing store.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	pinger  DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger DBPinger, version string) *HealthHandler {
	return &HealthHandler{
		pinger:  pinger,
		version: version,
	}
}

type storeStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status  string      `json:"status"`
	Version string      `json:"version"`
	Store   storeStatus `json:"store"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := "healthy"
	connected := true
	if h.pinger == nil || h.pinger.PingContext(r.Context()) != nil {
		status = "degraded"
		connected = false
	}

	data := healthData{
		Status:  status,
		Version: h.version,
		Store:   storeStatus{Connected: connected},
	}

	response.Success(w, http.StatusOK, data, requestID)
}
