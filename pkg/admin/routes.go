// Route registration for the admin API.

package admin

import "net/http"

// registerRoutes sets up all API routes.
func (a *AdminAPI) registerRoutes(mux *http.ServeMux) {
	// Health and status
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /status", a.handleGetStatus)

	// Endpoint management
	mux.HandleFunc("GET /endpoints", a.handleListEndpoints)
	mux.HandleFunc("POST /endpoints", a.handleCreateEndpoint)
	mux.HandleFunc("GET /endpoints/{id}", a.handleGetEndpoint)
	mux.HandleFunc("PUT /endpoints/{id}", a.handleUpdateEndpoint)
	mux.HandleFunc("DELETE /endpoints/{id}", a.handleDeleteEndpoint)

	// Ephemeral session store
	mux.HandleFunc("POST /session/reset", a.handleSessionReset)

	// Configuration export
	mux.HandleFunc("GET /config", a.handleExportConfig)
}
