// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"profilehub/internal/domain/model"
)

// sessionCookie carries the session id between requests. The id is also
// returned in the login body for clients that prefer explicit handling.
const sessionCookie = "profilehub_session"

// LoginResult mirrors the login shape returned by the service.
type LoginResult = model.LoginResult

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Login authenticates upstream and opens a session.
	Login(ctx context.Context, username, password string) (LoginResult, error)

	// Logout tears the session down. Safe on unknown ids.
	Logout(ctx context.Context, sessionID string)

	// SelectView activates and renders a view for the session.
	SelectView(ctx context.Context, sessionID, view string) (model.ViewResult, error)

	// CurrentView renders the session's active view.
	CurrentView(ctx context.Context, sessionID string) (model.ViewResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	loginHandler     *LoginHandler
	viewHandler      *ViewHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		loginHandler:     NewLoginHandler(deps),
		viewHandler:      NewViewHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/login", MetricsMiddleware(s.loginHandler.HandleLogin, "login"))
	mux.HandleFunc("/api/logout", MetricsMiddleware(s.loginHandler.HandleLogout, "logout"))
	mux.HandleFunc("/api/view", MetricsMiddleware(s.viewHandler.HandleView, "view"))
}

// loginRequest mirrors the OpenAPI schema for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (l loginRequest) validate() error {
	switch {
	case strings.TrimSpace(l.Username) == "":
		return errors.New("missing username")
	case strings.TrimSpace(l.Password) == "":
		return errors.New("missing password")
	}
	return nil
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	Login     string `json:"login"`
	Degraded  bool   `json:"degraded"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// authErrorCode translates service-level login and session errors into a
// stable wire code. Best-effort string checks keep this layer decoupled from
// the service package.
func authErrorCode(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired"):
		return "session_expired"
	case strings.Contains(msg, "no such session"):
		return "no_session"
	default:
		return "invalid_credentials"
	}
}

// sessionID resolves the session for a request: the query parameter wins,
// then the cookie.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		return id
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
