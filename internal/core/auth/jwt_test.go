package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}
}

func TestIssueAndParse(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("u-1", "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UID)
	assert.Equal(t, "admin", c.Role)
	assert.Empty(t, c.Purpose)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("u-1", "client")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: -2 * time.Minute}
	tok, err := j.Issue("u-1", "client")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestEmailVerificationPurpose(t *testing.T) {
	j := newTestJWTer()

	vtok, err := j.IssueEmailVerification("u-1")
	require.NoError(t, err)

	c, err := j.ParseEmailVerification(vtok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UID)
	assert.Equal(t, PurposeEmailVerify, c.Purpose)

	// An access token is not a verification token.
	atok, err := j.Issue("u-1", "client")
	require.NoError(t, err)
	_, err = j.ParseEmailVerification(atok)
	assert.Error(t, err)
}
