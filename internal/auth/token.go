// Package auth signs and verifies the admin session token. The token is a
// compact HS256 JWT whose "sid" claim points at the server-side session record.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformed = errors.New("token: malformed")
	ErrSignature = errors.New("token: bad signature")
	ErrExpired   = errors.New("token: expired")
	ErrClaims    = errors.New("token: invalid claims")
)

const issuer = "codstore"

type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	Issuer    string `json:"iss"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

var header = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

func (s *Signer) sign(unsigned string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(unsigned))
	return h.Sum(nil)
}

// Issue returns a token for an admin session valid for dur.
func (s *Signer) Issue(email, sessionID string, dur time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(dur)
	b, err := json.Marshal(Claims{
		Subject:   email,
		Email:     email,
		Role:      "admin",
		SessionID: sessionID,
		Issuer:    issuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: exp.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	unsigned := header + "." + base64.RawURLEncoding.EncodeToString(b)
	return unsigned + "." + base64.RawURLEncoding.EncodeToString(s.sign(unsigned)), exp, nil
}

func (s *Signer) Verify(tok string) (*Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformed
	}
	if !hmac.Equal(sig, s.sign(parts[0]+"."+parts[1])) {
		return nil, ErrSignature
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformed
	}
	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.Role != "admin" || c.Email == "" || c.SessionID == "" || c.Issuer != issuer {
		return nil, ErrClaims
	}
	if s.now().Unix() > c.ExpiresAt {
		return nil, ErrExpired
	}
	return &c, nil
}

// Value signs an opaque cookie value as "<sig>.<payload>".
func (s *Signer) Value(payload string) string {
	sig := base64.RawURLEncoding.EncodeToString(s.sign(payload))
	return sig + "." + base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// Open reverses Value, reporting false on any tampering.
func (s *Signer) Open(v string) (string, bool) {
	parts := strings.SplitN(v, ".", 2)
	if len(parts) != 2 {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", false
	}
	if !hmac.Equal(sig, s.sign(string(payload))) {
		return "", false
	}
	return string(payload), true
}
