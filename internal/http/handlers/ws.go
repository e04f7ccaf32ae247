package handlers

import (
	"net/http"

	"tasktracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// WS streams the current user's task events over a websocket.
func (h *Handler) WS(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login required."})
		return
	}
	_ = h.Hub.Serve(c.Writer, c.Request, u.ID, h.upgrader)
}
