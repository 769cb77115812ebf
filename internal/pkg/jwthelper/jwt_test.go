package jwthelper

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-silat/km-silat-api/internal/domain"
)

var testKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	p := domain.Principal{ID: "7b1c", Username: "admin", Role: domain.RoleAdmin}

	token, err := GenerateToken(testKey, p, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	p := domain.Principal{ID: "7b1c", Username: "admin", Role: domain.RoleAdmin}

	expired, err := GenerateToken(testKey, p, -time.Minute)
	require.NoError(t, err)

	otherKey, err := GenerateToken([]byte("another-key"), p, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: p.ID}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           p.ID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(testKey)
	require.NoError(t, err)

	valid, err := GenerateToken(testKey, p, time.Hour)
	require.NoError(t, err)
	tampered := valid[:strings.LastIndex(valid, ".")] + ".AAAA"

	tests := map[string]string{
		"expired":       expired,
		"wrong key":     otherKey,
		"alg none":      none,
		"other alg":     hs512,
		"bad signature": tampered,
		"garbage":       "not-a-token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(testKey, token)
			assert.Error(t, err)
		})
	}
}
