package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/blackburnd/portfolio-core/internal/core/domain"
	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the database connection)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Database unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Admin login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Admin logout
// @Description  Invalidate the current session
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.authService.Logout(r.Context(), authCtx.SessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Provider catalog endpoints

// handleListProviders godoc
// @Summary      List supported providers
// @Description  Returns the supported OAuth providers with their scope metadata and configured flag
// @Tags         Providers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   driving.ProviderCatalogEntry
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /providers [get]
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	entries, err := s.appConfigService.Providers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// App configuration endpoints

// handleGetAppConfig godoc
// @Summary      Get provider app configuration
// @Description  Returns the OAuth application credentials for a provider with the client secret masked
// @Tags         Configuration
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string  true  "Provider ID (google or linkedin)"
// @Success      200       {object}  domain.AppConfigSummary
// @Failure      400       {object}  ErrorResponse  "Unknown provider"
// @Failure      401       {object}  ErrorResponse  "Unauthorized"
// @Router       /providers/{provider}/config [get]
func (s *Server) handleGetAppConfig(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderID(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	summary, err := s.appConfigService.Get(r.Context(), provider)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProvider) {
			writeError(w, http.StatusBadRequest, "unknown provider")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load configuration")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleSaveAppConfig godoc
// @Summary      Save provider app configuration
// @Description  Stores OAuth application credentials for a provider, superseding any prior configuration. The secret is encrypted at rest.
// @Tags         Configuration
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string                     true  "Provider ID (google or linkedin)"
// @Param        request   body      driving.SaveConfigRequest  true  "Application credentials"
// @Success      200       {object}  domain.AppConfigSummary
// @Failure      400       {object}  ErrorResponse  "Invalid input"
// @Failure      401       {object}  ErrorResponse  "Unauthorized"
// @Router       /providers/{provider}/config [post]
func (s *Server) handleSaveAppConfig(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	provider, err := domain.ParseProviderID(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	var req driving.SaveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The path is authoritative for which provider is being configured
	req.Provider = provider

	summary, err := s.appConfigService.Save(r.Context(), authCtx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, "unknown provider")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to save configuration")
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleClearAppConfig godoc
// @Summary      Clear provider app configuration
// @Description  Removes the OAuth application credentials for a provider
// @Tags         Configuration
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string  true  "Provider ID (google or linkedin)"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse  "Unknown provider"
// @Failure      401       {object}  ErrorResponse  "Unauthorized"
// @Failure      404       {object}  ErrorResponse  "Not configured"
// @Router       /providers/{provider}/config [delete]
func (s *Server) handleClearAppConfig(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderID(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	if err := s.appConfigService.Clear(r.Context(), provider); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, "unknown provider")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "provider not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to clear configuration")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// OAuth flow endpoints

// handleOAuthAuthorize godoc
// @Summary      Start OAuth authorization
// @Description  Issues a single-use state token and returns the provider authorization URL for the popup window
// @Tags         OAuth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string                true   "Provider ID (google or linkedin)"
// @Param        request   body      driving.StartRequest  false  "Optional scope selection"
// @Success      200       {object}  driving.StartResponse
// @Failure      400       {object}  ErrorResponse  "Unknown provider or invalid scopes"
// @Failure      401       {object}  ErrorResponse  "Unauthorized"
// @Failure      409       {object}  ErrorResponse  "Provider not configured"
// @Router       /oauth/{provider}/authorize [post]
func (s *Server) handleOAuthAuthorize(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	provider, err := domain.ParseProviderID(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	// The body is optional; an empty body means default scopes
	var req driving.StartRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	req.Provider = provider

	resp, err := s.oauthService.Start(r.Context(), authCtx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownProvider):
			writeError(w, http.StatusBadRequest, "unknown provider")
		case errors.Is(err, domain.ErrProviderNotConfigured):
			writeError(w, http.StatusConflict, "provider not configured")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to start authorization")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleOAuthCallback godoc
// @Summary      OAuth provider callback
// @Description  Receives the provider redirect and responds with the popup completion page. Always returns HTML, never JSON.
// @Tags         OAuth
// @Produce      html
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "State token"
// @Param        error  query  string  false  "Provider error code"
// @Success      200    {string}  string  "Popup completion page"
// @Router       /oauth/callback [get]
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	// Query parameters come from an external redirect and can be missing,
	// duplicated, or garbage. Take the first value of each and let the
	// flow service decide what the combination means.
	q := r.URL.Query()
	req := driving.CallbackRequest{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}

	result, err := s.oauthService.Callback(r.Context(), req)
	if err != nil {
		slog.Warn("oauth callback failed", "error", err)
	}
	if result == nil {
		result = &driving.CallbackResult{
			Outcome: driving.OutcomeFailed,
			Message: "Authorization failed.",
		}
	}

	// The popup window is the client here. It needs the completion page
	// for every outcome so it can notify the opener and close itself.
	s.popup.Render(w, result)
}

// Connection endpoints

// handleOAuthStatus godoc
// @Summary      Connection status
// @Description  Returns the per-provider connection state for the authenticated admin
// @Tags         OAuth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ConnectionStatus
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /oauth/status [get]
func (s *Server) handleOAuthStatus(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	statuses, err := s.connectionService.Status(r.Context(), authCtx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load connection status")
		return
	}

	writeJSON(w, http.StatusOK, statuses)
}

// handleOAuthDisconnect godoc
// @Summary      Disconnect provider
// @Description  Deactivates the connection and best-effort revokes the tokens upstream. Local state always reaches disconnected.
// @Tags         OAuth
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string  true  "Provider ID (google or linkedin)"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse  "Unknown provider"
// @Failure      401       {object}  ErrorResponse  "Unauthorized"
// @Failure      404       {object}  ErrorResponse  "Not connected"
// @Router       /oauth/{provider} [delete]
func (s *Server) handleOAuthDisconnect(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	provider, err := domain.ParseProviderID(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	if err := s.connectionService.Disconnect(r.Context(), authCtx, provider); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotConnected):
			writeError(w, http.StatusNotFound, "not connected")
		default:
			writeError(w, http.StatusInternalServerError, "failed to disconnect")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
