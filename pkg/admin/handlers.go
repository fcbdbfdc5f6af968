package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getmockd/reflectd/internal/id"
	"github.com/getmockd/reflectd/internal/storage"
	"github.com/getmockd/reflectd/pkg/config"
	"github.com/getmockd/reflectd/pkg/endpoint"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// StatusResponse is the GET /status body.
type StatusResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	Uptime          string `json:"uptime"`
	EndpointCount   int    `json:"endpointCount"`
	ActiveResponses int    `json:"activeResponses"`
	SessionEntries  int    `json:"sessionEntries"`
	Listen          string `json:"listen"`
	AdminListen     string `json:"adminListen"`
}

// EndpointListResponse is the GET /endpoints body.
type EndpointListResponse struct {
	Endpoints []*endpoint.Endpoint `json:"endpoints"`
	Count     int                  `json:"count"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

// handleHealth handles GET /health.
func (a *AdminAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Uptime: a.Uptime()})
}

// handleGetStatus handles GET /status.
func (a *AdminAPI) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	version := a.version
	if version == "" {
		version = "dev"
	}

	activeResponses := 0
	endpoints := a.store.List()
	for _, ep := range endpoints {
		for _, rsp := range ep.Responses {
			if rsp.Active() {
				activeResponses++
			}
		}
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:          "running",
		Version:         version,
		Uptime:          a.Uptime(),
		EndpointCount:   len(endpoints),
		ActiveResponses: activeResponses,
		SessionEntries:  a.sessions.Len(),
		Listen:          a.settings.Listen,
		AdminListen:     a.settings.AdminListen,
	})
}

// handleListEndpoints handles GET /endpoints.
func (a *AdminAPI) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	endpoints := a.store.List()
	writeJSON(w, http.StatusOK, EndpointListResponse{Endpoints: endpoints, Count: len(endpoints)})
}

// handleCreateEndpoint handles POST /endpoints.
func (a *AdminAPI) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	ep, ok := a.decodeEndpoint(w, r)
	if !ok {
		return
	}

	ep.ID = id.New(id.PrefixEndpoint)
	for _, rsp := range ep.Responses {
		if rsp.ID == "" {
			rsp.ID = id.New(id.PrefixResponse)
		}
	}

	if err := a.store.Create(ep); err != nil {
		if errors.Is(err, storage.ErrDuplicateEndpoint) {
			writeError(w, http.StatusConflict, "duplicate_endpoint", err.Error())
			return
		}
		a.log.Error("endpoint create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not store endpoint")
		return
	}

	a.log.Info("endpoint created", "id", ep.ID, "method", ep.Method, "path", ep.Path)
	writeJSON(w, http.StatusCreated, ep)
}

// handleGetEndpoint handles GET /endpoints/{id}.
func (a *AdminAPI) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	ep := a.store.Get(r.PathValue("id"))
	if ep == nil {
		writeError(w, http.StatusNotFound, "not_found", "no endpoint with this id")
		return
	}
	writeJSON(w, http.StatusOK, ep)
}

// handleUpdateEndpoint handles PUT /endpoints/{id}.
func (a *AdminAPI) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	ep, ok := a.decodeEndpoint(w, r)
	if !ok {
		return
	}

	for _, rsp := range ep.Responses {
		if rsp.ID == "" {
			rsp.ID = id.New(id.PrefixResponse)
		}
	}

	epID := r.PathValue("id")
	if err := a.store.Update(epID, ep); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "no endpoint with this id")
		case errors.Is(err, storage.ErrDuplicateEndpoint):
			writeError(w, http.StatusConflict, "duplicate_endpoint", err.Error())
		default:
			a.log.Error("endpoint update failed", "id", epID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "could not update endpoint")
		}
		return
	}

	a.log.Info("endpoint updated", "id", epID)
	writeJSON(w, http.StatusOK, ep)
}

// handleDeleteEndpoint handles DELETE /endpoints/{id}.
func (a *AdminAPI) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	epID := r.PathValue("id")
	if !a.store.Delete(epID) {
		writeError(w, http.StatusNotFound, "not_found", "no endpoint with this id")
		return
	}
	a.log.Info("endpoint deleted", "id", epID)
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionReset handles POST /session/reset, dropping every entry in
// the ephemeral keyed store.
func (a *AdminAPI) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	cleared := a.sessions.Len()
	a.sessions.Clear()
	a.log.Info("session store cleared", "entries", cleared)
	writeJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// handleExportConfig handles GET /config, returning a document that can
// be fed back through the loader.
func (a *AdminAPI) handleExportConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.File{
		Settings:  a.settings,
		Endpoints: a.store.List(),
	})
}

// decodeEndpoint reads, normalizes, and validates an endpoint from the
// request body, writing the error response itself on failure.
func (a *AdminAPI) decodeEndpoint(w http.ResponseWriter, r *http.Request) (*endpoint.Endpoint, bool) {
	var ep endpoint.Endpoint
	if err := json.NewDecoder(r.Body).Decode(&ep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON in request body")
		return nil, false
	}

	ep.Normalize()
	if err := ep.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return nil, false
	}
	return &ep, true
}
