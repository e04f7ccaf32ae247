package handlers

import (
	"net/http"

	"tasktracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Index is the dashboard: the user's tasks with create, toggle and delete forms.
func (h *Handler) Index(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		failErr(c, err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"Tasks": tasks})
}
