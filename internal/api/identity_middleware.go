package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tmacedo/arena-tactics/internal/constants"
)

const ctxUserID = "userID"

// IdentityRequired reads the opaque player ID from the identity header and
// injects it into the request context. The core never authenticates —
// identity comes from an external provider and is only compared.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerID))
		if id == "" || len(id) > 64 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrIdentityReq})
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

// currentUserID returns the player ID injected by IdentityRequired.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
