package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat-app/config/common"
	"campus-chat-app/entity"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("aaa")
	require.NoError(t, err)
	assert.NotEqual(t, "aaa", hash)
	assert.True(t, ComparePassword(hash, "aaa"))
	assert.False(t, ComparePassword(hash, "aab"))
}

func TestTokenCarriesUserId(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "test-secret")
	j := NewJWT(common.NewConfig(v))

	user := &entity.User{Username: "Aditya"}
	user.ID = 42
	token, err := j.GenerateToken(user)
	require.NoError(t, err)

	id, err := j.GetUserIdFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = j.GetUserIdFromToken(token + "x")
	assert.Error(t, err)
}

func TestTokenFromAnotherIssuerIsRejected(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "test-secret")
	j := NewJWT(common.NewConfig(v))

	for _, claims := range []jwt.MapClaims{
		{"user_id": 1, "iss": "elsewhere", "aud": audience},
		{"user_id": 1, "iss": issuer, "aud": "elsewhere"},
	} {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = j.VerifyJwtToken(token)
		assert.Error(t, err)
	}
}
