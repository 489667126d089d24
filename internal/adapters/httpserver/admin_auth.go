package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/codstore/internal/adapters/identity"
	"github.com/phenrril/codstore/internal/domain"
)

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	login, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setAdminCookie(w, r, login.Token, login.ExpiresAt)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":           login.Token,
		"exp":             login.ExpiresAt.Unix(),
		"isAuthenticated": login.Session.Authenticated,
		"adminEmail":      login.Session.AdminEmail,
	})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if tok := s.readAdminToken(r); tok != "" {
		if err := s.auth.Logout(r.Context(), tok); err != nil {
			writeError(w, r, err)
			return
		}
	}
	s.clearAdminCookie(w, r)
	writeJSON(w, http.StatusOK, domain.AdminSession{})
}

// handleAdminSession reports the persisted admin flag; it never fails with 401
// so the UI can poll it.
func (s *Server) handleAdminSession(w http.ResponseWriter, r *http.Request) {
	tok := s.readAdminToken(r)
	if tok == "" {
		writeJSON(w, http.StatusOK, domain.AdminSession{})
		return
	}
	sess, err := s.auth.Verify(r.Context(), tok)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, domain.AdminSession{})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "google sign-in not configured"})
		return
	}
	state := identity.NewState()
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: state, Path: "/", MaxAge: 300, HttpOnly: true, Secure: s.isSecure(r), SameSite: http.SameSiteLaxMode})
	http.Redirect(w, r, s.google.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "google sign-in not configured"})
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie(stateCookie)
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		badRequest(w, "state")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})
	u, err := s.google.User(r.Context(), q.Get("code"))
	if err != nil {
		log.Warn().Err(err).Msg("google callback")
		writeError(w, r, err)
		return
	}
	login, err := s.auth.LoginAs(r.Context(), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.setAdminCookie(w, r, login.Token, login.ExpiresAt)
	http.Redirect(w, r, "/admin", http.StatusFound)
}
