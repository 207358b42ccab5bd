package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ju699/FlexFood/utils"
)

// AuthMiddleware guards the owner dashboard: it validates the bearer token
// and stores the owner id in the request context. The SPA redirects to the
// login screen on 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.OwnerID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid owner id in token"))
			c.Abort()
			return
		}

		c.Set("owner_id", claims.OwnerID)
		c.Next()
	}
}
