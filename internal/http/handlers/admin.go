package handlers

import (
	"fmt"
	"net/http"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

const adminUsersPath = "/auth/admin/users"

func (h *Handler) AdminUsersPage(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	render(c, http.StatusOK, "admin_users.html", gin.H{"Title": "Users", "Users": users})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{
		"users":           users,
		"current_user_id": middleware.CurrentUser(c).ID,
	})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.adminFail(c, domain.ErrUserNotFound)
		return
	}

	deleted, err := h.Admin.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.adminFail(c, err)
		return
	}

	msg := fmt.Sprintf("User %s has been deleted.", deleted.Username)
	if isForm(c) {
		flash(c, session.FlashSuccess, msg)
		redirect(c, adminUsersPath)
		return
	}
	succeed(c, http.StatusOK, msg, nil)
}

func (h *Handler) adminFail(c *gin.Context, err error) {
	if isForm(c) {
		flashErr(c, err)
		redirect(c, adminUsersPath)
		return
	}
	failErr(c, err)
}
