// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sipelita/dashboard/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	APIURL string
	HTTP   *http.Client
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. apiURL is the scoring API base
// URL checked for reachability.
func NewHandler(client *mongo.Client, apiURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		APIURL: apiURL,
		HTTP:   &http.Client{},
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	API      string `json:"api"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "api":"reachable" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
//
// An unreachable scoring API is reported but does not fail the check; the
// dashboard still serves its login page and audit trail without it.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		API:      h.checkAPI(ctx),
	}

	if h.Client == nil {
		resp.Database = "not_configured"
	} else if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// checkAPI reports whether the scoring API answers at all. Any HTTP
// response, including 404, counts as reachable.
func (h *Handler) checkAPI(ctx context.Context) string {
	if h.APIURL == "" {
		return "not_configured"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.APIURL, nil)
	if err != nil {
		return "unreachable"
	}
	resp, err := h.HTTP.Do(req)
	if err != nil {
		h.Log.Warn("health-check: api unreachable", zap.String("url", h.APIURL), zap.Error(err))
		return "unreachable"
	}
	resp.Body.Close()
	return "reachable"
}
