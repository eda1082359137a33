package managers

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// tokenLifetime is the fixed validity of a bearer token.
const tokenLifetime = 168 * time.Hour

// developmentFallbackSecret is used when JWT_SECRET is unset outside of
// production. The value is deliberately recognizable in any token inspection.
const developmentFallbackSecret = "taskhub-development-secret-do-not-use-in-production"

var errInvalidToken = errors.New("invalid token")

// JWTMgr is an interface that outlines the contract for token management.
// It includes methods for generating, validating and inspecting bearer tokens.
type JWTMgr interface {
	GenerateJWT(userId, username string) (string, error)
	ValidateJWT(tokenString string) (jwt.Claims, error)
}

// JWTManager handles JWT generation, signing, and validation with a
// process-wide HMAC secret that is read-only after startup.
type JWTManager struct {
	secret []byte
}

// NewJWTManager creates a new JWTManager with the given signing secret.
func NewJWTManager(secret string) JWTMgr {
	return &JWTManager{secret: []byte(secret)}
}

// NewJWTManagerFromEnv creates a JWTManager from the JWT_SECRET environment
// variable. A missing secret is fatal in production; elsewhere a clearly
// marked development fallback is substituted with a loud warning.
func NewJWTManagerFromEnv() (JWTMgr, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("ENVIRONMENT") == "production" {
			return nil, errors.New("JWT_SECRET must be set in production")
		}

		log.Warn("JWT_SECRET is not set, falling back to the development secret. Do not use this in production.")
		secret = developmentFallbackSecret
	}

	return NewJWTManager(secret), nil
}

// GenerateJWT generates a signed token for the given user, valid for 7 days.
func (jm *JWTManager) GenerateJWT(userId, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      "taskhub",
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
		"sub":      userId,
		"username": username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// ValidateJWT validates the given token and returns the claims if valid.
// Any malformed, unsigned, tampered or expired token yields an error.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("invalid signing method %q", token.Method.Alg())
		}

		return jm.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return token.Claims, nil
}

// ExtractSubjectAndUsername pulls the user id and username out of validated claims.
func ExtractSubjectAndUsername(claims jwt.Claims) (string, string, error) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return "", "", errInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errInvalidToken
	}

	username, _ := mapClaims["username"].(string)
	return sub, username, nil
}
