package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"taskhub/internal/managers"
	"taskhub/internal/schemas"
	"taskhub/internal/utils"
)

const bearerPrefix = "Bearer "

// RequireAuth is the authentication gate for protected routes. It extracts
// the bearer token from the Authorization header, validates it, and resolves
// the embedded user id against the users table. A token that refers to a
// deleted user is rejected like any other invalid token. On success the
// minimal identity and the claims are attached to the request context.
func RequireAuth(databaseMgr managers.DatabaseMgr, jwtMgr managers.JWTMgr) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("empty bearer token"))
			return
		}

		claims, err := jwtMgr.ValidateJWT(token)
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			return
		}

		userId, _, err := managers.ExtractSubjectAndUsername(claims)
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			return
		}

		identity := utils.Identity{ID: userId}
		queryString := "SELECT username, email FROM taskhub_schema.users WHERE user_id = $1"
		row := databaseMgr.GetPool().QueryRow(c, queryString, userId)
		if err := row.Scan(&identity.Username, &identity.Email); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errors.New("user no longer exists"))
				return
			}
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}

		c.Set(utils.ClaimsKey.String(), claims)
		c.Set(utils.IdentityKey.String(), identity)
		c.Next()
	}
}
