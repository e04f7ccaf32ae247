package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/logger"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	msgBadBody  = "Invalid request body."
	msgInternal = "Internal server error."
)

// errorResponse maps a service error to a status code and user-facing text.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUsernameRequired):
		return http.StatusBadRequest, "Username is required."
	case errors.Is(err, domain.ErrPasswordRequired):
		return http.StatusBadRequest, "Password is required."
	case errors.Is(err, domain.ErrUsernameTooLong):
		return http.StatusBadRequest, "Username is too long."
	case errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password is too long."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User is already registered."
	case errors.Is(err, domain.ErrBadUsername):
		return http.StatusUnauthorized, "Incorrect username."
	case errors.Is(err, domain.ErrBadPassword):
		return http.StatusUnauthorized, "Incorrect password."
	case errors.Is(err, domain.ErrSelfDelete):
		return http.StatusBadRequest, "You cannot delete your own account."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found."
	case errors.Is(err, domain.ErrTitleRequired):
		return http.StatusBadRequest, "Title is required."
	case errors.Is(err, domain.ErrFieldTooLong):
		return http.StatusBadRequest, "A field exceeds its maximum length."
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Status must be todo, in_progress or done."
	case errors.Is(err, domain.ErrInvalidPriority):
		return http.StatusBadRequest, "Priority must be low, medium or high."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to modify this task."
	}
	return http.StatusInternalServerError, msgInternal
}

// isJSON reports whether the request body is JSON.
func isJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}

// isForm reports whether the request came from an HTML form.
func isForm(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == gin.MIMEPOSTForm || ct == gin.MIMEMultipartPOSTForm
}

func succeed(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	middleware.SaveSession(c)
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	middleware.SaveSession(c)
	c.JSON(status, gin.H{"success": false, "error": message})
}

// failErr answers with the mapped status of err, logging unexpected ones.
func failErr(c *gin.Context, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	fail(c, status, msg)
}

func flash(c *gin.Context, category, msg string) {
	middleware.Flash(c, category, msg)
}

// flashErr flashes the mapped message for err.
func flashErr(c *gin.Context, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	flash(c, session.FlashError, msg)
}

func redirect(c *gin.Context, location string) {
	middleware.SaveSession(c)
	c.Redirect(http.StatusFound, location)
}

// render executes a page with the current user and pending flashes.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentUser(c)
	if s := middleware.CurrentSession(c); s != nil {
		data["Flashes"] = s.PopFlashes()
	}
	middleware.SaveSession(c)
	c.HTML(status, name, data)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
