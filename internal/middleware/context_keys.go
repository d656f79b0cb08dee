package middleware

import (
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// authContextKey is the key used to store the caller's AuthContext in the Gin
// context and in the request context.
const authContextKey = contextKey("authContext")

// GetAuthContext retrieves the authenticated caller from the Gin context.
// It returns the AuthContext and a boolean indicating if it was found.
func GetAuthContext(c *gin.Context) (domain.AuthContext, bool) {
	val, exists := c.Get(string(authContextKey))
	if !exists {
		// check in the request context as well
		val = c.Request.Context().Value(authContextKey)
		if val == nil {
			return domain.AuthContext{}, false
		}
	}

	auth, ok := val.(domain.AuthContext)
	if !ok || auth.UserID == "" || auth.CompanyID == "" {
		return domain.AuthContext{}, false
	}
	return auth, true
}
