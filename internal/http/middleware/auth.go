package middleware

import (
	"net/http"

	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

const loginPath = "/auth/login"

// LoginRequired rejects anonymous requests: API callers get 401, pages are
// redirected to the login form.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireLogin(c) {
			return
		}
		c.Next()
	}
}

// AdminRequired implies LoginRequired and additionally needs is_admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireLogin(c) {
			return
		}

		if CurrentUser(c).IsAdmin {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required."})
			return
		}
		Flash(c, session.FlashError, "Admin access required.")
		SaveSession(c)
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// requireLogin aborts the request and reports false when nobody is logged in.
func requireLogin(c *gin.Context) bool {
	if CurrentUser(c) != nil {
		return true
	}

	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login required."})
		return false
	}
	SaveSession(c)
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
	return false
}
