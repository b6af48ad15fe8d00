package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// principalKey is the key used to store the authenticated principal in the
// request context.
const principalKey = contextKey("principal")

// GetPrincipalFromContext retrieves the authenticated principal from the Gin
// context. The boolean reports whether the auth middleware ran.
func GetPrincipalFromContext(c *gin.Context) (models.Principal, bool) {
	val := c.Request.Context().Value(principalKey)
	if val == nil {
		return models.Principal{}, false
	}
	principal, ok := val.(models.Principal)
	return principal, ok
}
