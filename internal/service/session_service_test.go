package service

import (
	"testing"

	"clinic-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:doctor:7:abc", SessionKey(entity.PrincipalDoctor, 7, "abc"))
	assert.Equal(t, "session:staff:1:*", SessionKey(entity.PrincipalStaff, 1, "*"))
}

func TestParseSession(t *testing.T) {
	principal, err := parseSession(map[string]string{"kind": "doctor", "id": "7", "name": "Dr. House", "created_at": "1700000000"})
	require.NoError(t, err)
	assert.Equal(t, entity.Principal{Kind: entity.PrincipalDoctor, ID: 7, Name: "Dr. House"}, *principal)

	_, err = parseSession(nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = parseSession(map[string]string{})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = parseSession(map[string]string{"kind": "doctor", "id": ""})
	assert.Error(t, err)

	_, err = parseSession(map[string]string{"kind": "patient", "id": "7"})
	assert.Error(t, err)
}
