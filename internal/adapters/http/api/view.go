// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ViewHandler handles view selection and rendering requests.
type ViewHandler struct {
	deps Dependencies
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies) *ViewHandler {
	return &ViewHandler{deps: deps}
}

// HandleView handles GET /api/view requests. The view query parameter
// selects a new view; without it the session's current view renders.
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := sessionID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "no_session", ErrNoSession)
		return
	}

	viewName, selecting := requestedView(r)

	var err error
	var result any
	if selecting {
		result, err = h.deps.SelectView(r.Context(), id, viewName)
	} else {
		result, err = h.deps.CurrentView(r.Context(), id)
	}
	if err != nil {
		writeError(w, http.StatusUnauthorized, authErrorCode(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func requestedView(r *http.Request) (string, bool) {
	if !r.URL.Query().Has("view") {
		return "", false
	}
	return strings.TrimSpace(r.URL.Query().Get("view")), true
}
