package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer() *JWTer {
	return &JWTer{
		Secret:   []byte("test-secret"),
		Issuer:   "nemukerja-test",
		TTL:      time.Hour,
		ResetTTL: 30 * time.Minute,
	}
}

func TestIssueAndParse(t *testing.T) {
	j := newTestJWTer()

	token, err := j.Issue("user-1", "applicant")
	require.NoError(t, err)

	c, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UID)
	assert.Equal(t, "applicant", c.Role)
	assert.Equal(t, PurposeAccess, c.Purpose)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1", "applicant")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("different"), Issuer: j.Issuer, TTL: j.TTL}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := newTestJWTer()
	token, err := j.Issue("user-1", "applicant")
	require.NoError(t, err)

	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: j.TTL}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestResetTokens(t *testing.T) {
	j := newTestJWTer()

	t.Run("round trip", func(t *testing.T) {
		token, err := j.IssueReset("user-1")
		require.NoError(t, err)
		uid, err := j.ParseReset(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", uid)
	})

	t.Run("access token is refused", func(t *testing.T) {
		token, err := j.Issue("user-1", "applicant")
		require.NoError(t, err)
		_, err = j.ParseReset(token)
		assert.Error(t, err)
	})
}
