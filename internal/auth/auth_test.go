package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_TokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, expiresAt, err := m.NewToken("admin", RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.RequireRole(token, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	_, err = m.RequireRole(token, "auditor")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestManager_RejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	foreign, _, err := other.NewToken("admin", RoleAdmin)
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.NewToken("admin", RoleAdmin)
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminAuthenticator_Login(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	a := NewAdminAuthenticator("admin", hash, NewManager("secret", time.Hour))

	token, _, err := a.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = a.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = a.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = a.Login("admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
