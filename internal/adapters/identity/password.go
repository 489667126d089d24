// Package identity authenticates administrators, either by password against
// the admin_users table or through Google sign-in.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/codstore/internal/domain"
)

type Password struct {
	Admins domain.AdminRepo
}

func (p *Password) Authenticate(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	u, err := p.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		// Keep timing uniform for unknown emails.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if u.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("codstore"), bcrypt.MinCost)

func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
