package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		username string
		role     string
		address  string
	}{
		{
			name:     "администратор",
			username: "deployer",
			role:     "admin",
			address:  "6f1b6c1e-9f4b-4c9a-8d12-aaa111bbb222",
		},
		{
			name:     "обычный пользователь",
			username: "regular_user",
			role:     "user",
			address:  "0e9d8c7b-6a5f-4e3d-2c1b-ccc333ddd444",
		},
		{
			name:     "пользователь с цифрами в имени",
			username: "user123",
			role:     "user",
			address:  "11112222-3333-4444-5555-666677778888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.username, tt.role, tt.address)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.address, claims.Address)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name     string
		tokenStr string
	}{
		{name: "пустая строка", tokenStr: ""},
		{name: "мусор вместо токена", tokenStr: "not.a.token"},
		{
			name:     "токен с другой подписью",
			tokenStr: mustToken(t, NewJWTMaker("another_secret", 15*time.Minute)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.tokenStr)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	token, err := maker.GenerateToken("user", "user", "addr")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func mustToken(t *testing.T, m *MakerImpl) string {
	t.Helper()
	token, err := m.GenerateToken("user", "user", "addr")
	require.NoError(t, err)
	return token
}
