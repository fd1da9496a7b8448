package app

import (
	"net/http"

	"campus_equipment_lending/lending"
	"campus_equipment_lending/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

func AuthRequired(appSess *session.AppSessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "error": "invalid session"})
			return
		}

		// 把 userID/role 放进上下文，后续 handler 可用
		c.Set("userID", as.UserID)
		c.Set("userRole", as.Role)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "error": "unauthorized"})
			return
		}
		if role, _ := v.(string); role != lending.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Caller builds the explicit identity every lifecycle operation takes.
func Caller(c *gin.Context) lending.Identity {
	var id lending.Identity
	if v, ok := c.Get("userID"); ok {
		id.ID, _ = v.(string)
	}
	if v, ok := c.Get("userRole"); ok {
		id.Role, _ = v.(string)
	}
	return id
}
