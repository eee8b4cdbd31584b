package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"carpool/internal/domain"
)

const actorContextKey = "actor"

// authClaims are the token claims the identity service issues.
type authClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// AuthMiddleware returns middleware that authenticates requests with a
// Bearer token and stores the resulting actor in the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims := &authClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorContextKey, domain.Actor{
			UserID:  claims.Subject,
			IsAdmin: claims.Admin,
		})
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor stored by AuthMiddleware.
func ActorFromContext(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
