package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey)

	tests := []struct {
		name    string
		userUID string
		ttl     time.Duration
		wantTTL time.Duration
	}{
		{
			name:    "explicit ttl",
			userUID: "0b9a4a02-5b1c-4b02-a2d3-111111111111",
			ttl:     30 * time.Minute,
			wantTTL: 30 * time.Minute,
		},
		{
			name:    "zero ttl falls back to default",
			userUID: "0b9a4a02-5b1c-4b02-a2d3-222222222222",
			ttl:     0,
			wantTTL: DefaultTokenTTL,
		},
		{
			name:    "negative ttl falls back to default",
			userUID: "0b9a4a02-5b1c-4b02-a2d3-333333333333",
			ttl:     -time.Minute,
			wantTTL: DefaultTokenTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.ttl)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID())
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tt.wantTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey)

	validToken, err := maker.GenerateToken("some-user-uid", time.Minute)
	require.NoError(t, err)

	wrongMaker := NewMaker("another_secret_key")
	wrongSecretToken, err := wrongMaker.GenerateToken("some-user-uid", time.Minute)
	require.NoError(t, err)

	emptySubjectToken, err := maker.GenerateToken("", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "пустой токен", token: ""},
		{name: "битая структура", token: "invalid.token.here"},
		{name: "чужой секретный ключ", token: wrongSecretToken},
		{name: "испорченная подпись", token: validToken + "tampered"},
		{name: "пустой subject", token: emptySubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_TokenExpiryBoundary(t *testing.T) {
	secretKey := "test_secret_key"
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	issuer := NewMakerWithClock(secretKey, func() time.Time { return issuedAt })
	token, err := issuer.GenerateToken("boundary-user", ttl)
	require.NoError(t, err)

	// За секунду до истечения токен валиден
	before := NewMakerWithClock(secretKey, func() time.Time {
		return issuedAt.Add(ttl - time.Second)
	})
	claims, err := before.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "boundary-user", claims.UserUID())

	// Через секунду после истечения — нет
	after := NewMakerWithClock(secretKey, func() time.Time {
		return issuedAt.Add(ttl + time.Second)
	})
	claims, err = after.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "expired")
}
