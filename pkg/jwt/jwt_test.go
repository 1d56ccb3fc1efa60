package jwt

import (
	"testing"
	"time"

	"clinic-portal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Hour})

	token, sessionID, err := svc.GenerateSessionToken("doctor", 42)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, "doctor", claims.PrincipalKind)

	id, err := claims.PrincipalID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Hour})

	token, _, err := issuer.GenerateSessionToken("staff", 1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret", AccessExpiry: -time.Minute})

	token, _, err := svc.GenerateSessionToken("doctor", 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
