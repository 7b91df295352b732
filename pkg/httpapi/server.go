// Package httpapi exposes the user service over HTTP: the public
// registration and login endpoints and the protected management
// endpoints behind the authentication gate.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/StricklySoft/stricklysoft-userservice/pkg/auth"
	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// tokenResponse is the body returned by both registration and login.
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Server holds the handlers' dependencies.
type Server struct {
	svc *auth.Service
}

// NewServer builds the HTTP server around the authentication service.
func NewServer(svc *auth.Service) *Server {
	return &Server{svc: svc}
}

// Handler assembles the full handler chain: the route mux wrapped in
// the authorizer and, outermost, the request interception filter. The
// /auth/ endpoints bypass the filter.
func (s *Server) Handler(codec *auth.TokenCodec, resolver auth.PrincipalResolver) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/authenticate", s.handleAuthenticate)
	mux.HandleFunc("GET /management", s.handleManagementGet)
	mux.HandleFunc("POST /management", s.handleManagementPost)

	chain := auth.Authorizer(auth.DefaultRules())(mux)
	return auth.Middleware(codec, resolver)(chain)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, sserr.Wrap(err, sserr.CodeValidationFormat, "request body is not valid JSON"))
		return
	}

	token, err := s.svc.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, sserr.Wrap(err, sserr.CodeValidationFormat, "request body is not valid JSON"))
		return
	}

	token, err := s.svc.Authenticate(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}

// The management handlers are demonstration endpoints; the interesting
// behavior is the gate in front of them.

func (s *Server) handleManagementGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Secured Endpoint :: GET - Member controller"))
}

func (s *Server) handleManagementPost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("POST:: management controller"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a structured error onto an HTTP status. 5xx causes
// are logged and replaced with a generic message so internals never
// leak to callers.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	serr, ok := sserr.AsError(err)
	if !ok {
		serr = sserr.Wrap(err, sserr.CodeInternal, "internal error")
	}

	status := serr.HTTPStatus()
	msg := serr.Message
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("code", serr.Code.String()),
			slog.Any("error", err))
		msg = "Internal server error"
	}
	http.Error(w, msg, status)
}
