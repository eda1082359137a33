package utils

import "github.com/gin-gonic/gin"

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// ClaimsKey is the context key used for storing JWT claims in a request context.
// It ensures that the key is unique to avoid conflicts with other context keys.
var ClaimsKey = &contextKey{"claims"}

// IdentityKey is the context key used for storing the resolved user identity in a request context.
var IdentityKey = &contextKey{"identity"}

// TraceIdKey is the context key used for storing the trace id of a request.
var TraceIdKey = &contextKey{"traceId"}

// SanitizedPayloadKey is the context key used for storing the validated request payload.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}

// Identity is the minimal authenticated identity attached to a request after
// the bearer token has been verified and resolved against the store.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// GetIdentity returns the identity attached by the auth gate, if any.
func GetIdentity(c *gin.Context) (Identity, bool) {
	identity, ok := c.Value(IdentityKey.String()).(Identity)
	return identity, ok
}
