package managers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	jwtMgr := NewJWTManager("unit-test-secret")

	token, err := jwtMgr.GenerateJWT("user-123", "testUser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtMgr.ValidateJWT(token)
	require.NoError(t, err)

	userId, username, err := ExtractSubjectAndUsername(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userId)
	assert.Equal(t, "testUser", username)

	mapClaims := claims.(jwt.MapClaims)
	assert.Equal(t, "taskhub", mapClaims["iss"])

	exp, err := mapClaims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), exp.Time, time.Minute)
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	jwtMgr := NewJWTManager("unit-test-secret")

	token, err := jwtMgr.GenerateJWT("user-123", "testUser")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = jwtMgr.ValidateJWT(tampered)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-one").GenerateJWT("user-123", "testUser")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-two").ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	secret := "unit-test-secret"
	claims := jwt.MapClaims{
		"iss":      "taskhub",
		"iat":      time.Now().Add(-2 * time.Hour).Unix(),
		"exp":      time.Now().Add(-time.Hour).Unix(),
		"sub":      "user-123",
		"username": "testUser",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTManager(secret).ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsUnsignedToken(t *testing.T) {
	claims := jwt.MapClaims{
		"iss": "taskhub",
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": "user-123",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("unit-test-secret").ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("unit-test-secret").ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestNewJWTManagerFromEnv(t *testing.T) {
	t.Run("FatalWithoutSecretInProduction", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENVIRONMENT", "production")

		_, err := NewJWTManagerFromEnv()
		assert.Error(t, err)
	})

	t.Run("FallbackOutsideProduction", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENVIRONMENT", "development")

		jwtMgr, err := NewJWTManagerFromEnv()
		require.NoError(t, err)

		token, err := jwtMgr.GenerateJWT("user-123", "testUser")
		require.NoError(t, err)

		_, err = jwtMgr.ValidateJWT(token)
		assert.NoError(t, err)
	})

	t.Run("ConfiguredSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "configured-secret")
		t.Setenv("ENVIRONMENT", "production")

		jwtMgr, err := NewJWTManagerFromEnv()
		require.NoError(t, err)

		token, err := jwtMgr.GenerateJWT("user-123", "testUser")
		require.NoError(t, err)

		// The fallback secret must not validate a token from the configured manager
		_, err = NewJWTManager(developmentFallbackSecret).ValidateJWT(token)
		assert.Error(t, err)
	})
}
