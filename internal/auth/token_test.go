package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_IssueVerify(t *testing.T) {
	s := NewSigner("secret")
	tok, exp, err := s.Issue("admin@store.com", "sid-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	c, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@store.com", c.Email)
	assert.Equal(t, "sid-1", c.SessionID)
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("secret")
	tok, _, err := s.Issue("admin@store.com", "sid-1", time.Hour)
	require.NoError(t, err)

	_, err = NewSigner("other").Verify(tok)
	assert.ErrorIs(t, err, ErrSignature)

	_, err = s.Verify("a.b")
	assert.ErrorIs(t, err, ErrMalformed)

	parts := strings.Split(tok, ".")
	_, err = s.Verify(parts[0] + "." + parts[1] + "x." + parts[2])
	assert.Error(t, err)

	now := time.Now()
	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestSigner_ValueOpen(t *testing.T) {
	s := NewSigner("secret")
	v := s.Value("session-123")
	got, ok := s.Open(v)
	require.True(t, ok)
	assert.Equal(t, "session-123", got)

	_, ok = NewSigner("nope").Open(v)
	assert.False(t, ok)
	_, ok = s.Open("garbage")
	assert.False(t, ok)
}
