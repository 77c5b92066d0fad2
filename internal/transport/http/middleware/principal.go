package middleware

import (
	"github.com/gin-gonic/gin"

	"knowledgelink/internal/model"
)

const principalContextKey = "principal"

// StaticPrincipal attaches the same principal to every request. This is the
// seam where session authentication plugs in later: handlers and store
// queries only ever see the principal from the context.
func StaticPrincipal(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalContextKey, model.Principal{UserID: userID})
		c.Next()
	}
}

func PrincipalFromContext(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}
