package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/phenrril/codstore/internal/domain"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Google maps a Google account onto an existing admin user by email.
type Google struct {
	Config      *oauth2.Config
	Admins      domain.AdminRepo
	UserInfoURL string
}

// NewGoogle returns nil when the client credentials are not configured.
func NewGoogle(clientID, clientSecret, redirectURL string, admins domain.AdminRepo) *Google {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &Google{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		Admins:      admins,
		UserInfoURL: googleUserInfoURL,
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUser struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// User exchanges the callback code and resolves the admin account. A Google
// account with no matching admin user yields domain.ErrNotAdmin.
func (g *Google) User(ctx context.Context, code string) (*domain.AdminUser, error) {
	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange: %v", domain.ErrInvalidCredentials, err)
	}
	resp, err := g.Config.Client(ctx, tok).Get(g.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, body)
	}
	var info googleUser
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" || !info.EmailVerified {
		return nil, domain.ErrInvalidCredentials
	}
	u, err := g.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotAdmin
	}
	if err != nil {
		return nil, err
	}
	if u.Name == "" && info.Name != "" {
		u.Name = info.Name
		if err := g.Admins.Save(ctx, u); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("google login: store display name")
		}
	}
	return u, nil
}

// NewState is the anti-forgery value stored in the oauth_state cookie.
func NewState() string { return uuid.NewString() }
