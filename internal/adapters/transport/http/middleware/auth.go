package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/jwt"
	"github.com/inkwell-app/inkwell/api-service/internal/domain/auth/repo"
)

const identityKey = "identity"

const bearerPrefix = "Bearer "

// AuthRequired gates a route group behind a valid identity token. The
// Authorization header may carry either the bare token or the
// "Bearer <token>" form.
func AuthRequired(jwtUtil jwt.JWTUtil, tokens repo.TokenRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFromHeader(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		claims, err := jwtUtil.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// TokenFromHeader extracts the raw token from the Authorization header,
// stripping the "Bearer " prefix when present.
func TokenFromHeader(c *gin.Context) string {
	raw := c.GetHeader("Authorization")
	if strings.HasPrefix(raw, bearerPrefix) {
		raw = raw[len(bearerPrefix):]
	}
	return raw
}

// Identity returns the claims the auth gate attached to the request.
func Identity(c *gin.Context) (jwt.Claims, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return jwt.Claims{}, false
	}
	claims, ok := value.(jwt.Claims)
	return claims, ok
}
