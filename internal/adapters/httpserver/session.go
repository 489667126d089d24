package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/cart"
)

const (
	cartCookie  = "cart_sid"
	adminCookie = "admin_token"
	stateCookie = "oauth_state"
)

func (s *Server) isSecure(r *http.Request) bool {
	return s.secure || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// cartFor opens the cart of the caller's session, issuing a fresh signed
// session cookie when none is present or it fails verification.
func (s *Server) cartFor(w http.ResponseWriter, r *http.Request) (*cart.Store, error) {
	sid := ""
	if c, err := r.Cookie(cartCookie); err == nil {
		if v, ok := s.cookies.Open(c.Value); ok {
			sid = v
		}
	}
	if sid == "" {
		sid = uuid.NewString()
	}
	// Sliding expiry, matching the kv TTL.
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    s.cookies.Value(sid),
		Path:     "/",
		MaxAge:   int(cart.TTL / time.Second),
		HttpOnly: true,
		Secure:   s.isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
	return s.carts.Open(r.Context(), sid)
}

func (s *Server) readAdminToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	c, err := r.Cookie(adminCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setAdminCookie(w http.ResponseWriter, r *http.Request, tok string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(time.Until(exp) / time.Second),
		HttpOnly: true,
		Secure:   s.isSecure(r),
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearAdminCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: s.isSecure(r), SameSite: http.SameSiteStrictMode})
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := s.readAdminToken(r)
		if tok == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
			return
		}
		if _, err := s.auth.Verify(r.Context(), tok); err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r)
	}
}
