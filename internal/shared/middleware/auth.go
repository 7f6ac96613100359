package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/response"
	"library-api/pkg/jwt"
)

// ContextUserID is the gin context key the authenticated principal is stored
// under. Handlers read it with PrincipalID.
const ContextUserID = "userID"

// RequireAuth rejects any request without a valid Bearer access token before
// it reaches a handler. The error body is uniform regardless of whether the
// header is missing, malformed or carries a bad token.
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, manager)
		if !ok {
			response.AuthRequired(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// AuthOrReadOnly lets safe methods through anonymously and applies RequireAuth
// semantics to everything else. Used on the combined list-or-create and
// retrieve-or-mutate endpoints.
func AuthOrReadOnly(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			// Anonymous read. Still resolve the principal when a valid token
			// is present so handlers can log it.
			if claims, ok := authenticate(c, manager); ok {
				c.Set(ContextUserID, claims.UserID)
			}
			c.Next()
			return
		}

		claims, ok := authenticate(c, manager)
		if !ok {
			response.AuthRequired(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// PrincipalID returns the authenticated user id, or false for anonymous
// requests.
func PrincipalID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func authenticate(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
