package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "classtrack.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 42, Username: "ekin"}

	accessToken, refreshToken, expiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ekin", claims.Username)
	assert.Equal(t, "classtrack.test", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		svc := newTestService(-time.Minute)
		accessToken, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "u"})
		require.NoError(t, err)

		_, err = svc.ValidateAndExtractClaims(accessToken)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrExpiredToken))
	})

	t.Run("wrong secret", func(t *testing.T) {
		accessToken, _, _, err := newTestService(time.Hour).
			GenerateTokenPair(&models.User{ID: 1, Username: "u"})
		require.NoError(t, err)

		other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
		_, err = other.ValidateAndExtractClaims(accessToken)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, err := svc.ValidateAndExtractClaims("not.a.token")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestService(time.Hour)
		_, err := svc.ValidateAndExtractClaims("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
