package credential_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwang/apiforge/internal/credential"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub":      "17",
		"username": "wang",
		"role":     "admin",
		"exp":      exp.Unix(),
	})

	claims, err := credential.InspectToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "17", claims.Subject)
	assert.Equal(t, "wang", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	assert.False(t, claims.Expired(time.Now()))
}

func TestInspectTokenExpired(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	claims, err := credential.InspectToken(raw)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestInspectTokenNoExpiry(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "1"})

	claims, err := credential.InspectToken(raw)
	require.NoError(t, err)
	assert.False(t, claims.Expired(time.Now()))
}

func TestInspectTokenGarbage(t *testing.T) {
	_, err := credential.InspectToken("not-a-jwt")
	assert.Error(t, err)
}
