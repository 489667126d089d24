package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/codstore/internal/auth"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
	"github.com/phenrril/codstore/internal/metrics"
)

// SessionKeyPrefix namespaces admin session records in the kv store.
const SessionKeyPrefix = "admin-auth-storage:"

const DefaultSessionTTL = 12 * time.Hour

// IdentityProvider checks credentials. It returns domain.ErrInvalidCredentials
// when they do not match any account.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.AdminUser, error)
}

type AuthUC struct {
	Identity IdentityProvider
	Admins   domain.AdminRepo
	Sessions kv.Store
	Signer   *auth.Signer
	TTL      time.Duration
	Metrics  *metrics.Registry
}

type AdminLogin struct {
	Token     string
	ExpiresAt time.Time
	Session   domain.AdminSession
}

func (uc *AuthUC) ttl() time.Duration {
	if uc.TTL > 0 {
		return uc.TTL
	}
	return DefaultSessionTTL
}

// Login authenticates and then checks the admin allowlist. A valid account
// without a grant fails with ErrNotAdmin and no session is stored.
func (uc *AuthUC) Login(ctx context.Context, email, password string) (*AdminLogin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		uc.Metrics.Login("invalid")
		return nil, domain.ErrInvalidCredentials
	}
	u, err := uc.Identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.Metrics.Login("invalid")
		}
		return nil, err
	}
	return uc.LoginAs(ctx, u)
}

// LoginAs opens a session for a user already authenticated elsewhere.
func (uc *AuthUC) LoginAs(ctx context.Context, u *domain.AdminUser) (*AdminLogin, error) {
	ok, err := uc.Admins.IsAdmin(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("admin check: %w", err)
	}
	if !ok {
		uc.Metrics.Login("forbidden")
		log.Warn().Str("email", u.Email).Msg("login without admin grant")
		return nil, domain.ErrNotAdmin
	}

	sid := uuid.NewString()
	sess := domain.AdminSession{Authenticated: true, AdminEmail: u.Email}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := uc.Sessions.Set(ctx, SessionKeyPrefix+sid, raw, uc.ttl()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	tok, exp, err := uc.Signer.Issue(u.Email, sid, uc.ttl())
	if err != nil {
		return nil, err
	}
	uc.Metrics.Login("ok")
	log.Info().Str("email", u.Email).Msg("admin login")
	return &AdminLogin{Token: tok, ExpiresAt: exp, Session: sess}, nil
}

// Verify accepts a token only while its session record exists.
func (uc *AuthUC) Verify(ctx context.Context, tok string) (*domain.AdminSession, error) {
	c, err := uc.Signer.Verify(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	raw, err := uc.Sessions.Get(ctx, SessionKeyPrefix+c.SessionID)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, fmt.Errorf("%w: session revoked", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	var sess domain.AdminSession
	if err := json.Unmarshal(raw, &sess); err != nil || !sess.Authenticated || !strings.EqualFold(sess.AdminEmail, c.Email) {
		return nil, fmt.Errorf("%w: bad session", domain.ErrUnauthorized)
	}
	return &sess, nil
}

// Logout deletes the session record. Unknown or invalid tokens are ignored.
func (uc *AuthUC) Logout(ctx context.Context, tok string) error {
	c, err := uc.Signer.Verify(tok)
	if err != nil {
		return nil
	}
	return uc.Sessions.Delete(ctx, SessionKeyPrefix+c.SessionID)
}
