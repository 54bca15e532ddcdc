package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

//go:embed templates/popup_complete.html.tmpl
var popupTemplateFS embed.FS

//go:embed static/oauth-popup.js
var popupScript []byte

// PopupBridge renders the server half of the popup completion protocol:
// the page returned by the OAuth callback, which posts the outcome to the
// opener window and closes itself. The opener half lives in
// static/oauth-popup.js.
type PopupBridge struct {
	tmpl *template.Template

	// targetOrigin is the only origin the completion page will post to.
	// Restricting it means a window on a foreign origin can never receive
	// the outcome payload.
	targetOrigin string
}

// NewPopupBridge creates the bridge for the given application base URL.
func NewPopupBridge(baseURL string) (*PopupBridge, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	tmpl, err := template.ParseFS(popupTemplateFS, "templates/popup_complete.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse popup template: %w", err)
	}

	return &PopupBridge{
		tmpl:         tmpl,
		targetOrigin: u.Scheme + "://" + u.Host,
	}, nil
}

// popupPageData is the completion page template payload.
type popupPageData struct {
	Title        string
	Message      string
	Payload      *driving.CallbackResult
	TargetOrigin string
}

// Render writes the completion page for a flow result. The page is served
// for every outcome, success or failure; the popup must never hang silently.
func (b *PopupBridge) Render(w http.ResponseWriter, result *driving.CallbackResult) {
	title := "Connection failed"
	switch result.Outcome {
	case driving.OutcomeSuccess:
		title = "Connected"
	case driving.OutcomeCancelled:
		title = "Connection cancelled"
	}

	message := result.Message
	if message == "" {
		message = "You can close this window."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = b.tmpl.Execute(w, popupPageData{
		Title:        title,
		Message:      message,
		Payload:      result,
		TargetOrigin: b.targetOrigin,
	})
}

// handlePopupScript serves the opener-side bridge script.
func (s *Server) handlePopupScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(popupScript)
}
