package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// bindCredentials reads username/password from a JSON or form body.
func bindCredentials(c *gin.Context) (credentials, error) {
	var req credentials
	if isJSON(c) {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}
		return req, nil
	}
	req.Username = c.PostForm("username")
	req.Password = c.PostForm("password")
	return req, nil
}

func (h *Handler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (h *Handler) Register(c *gin.Context) {
	req, err := bindCredentials(c)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadBody)
		return
	}

	_, err = h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.AuthEvents.WithLabelValues("register", "error").Inc()

		status, msg := errorResponse(err)
		if errors.Is(err, domain.ErrUserExists) {
			msg = fmt.Sprintf("User %s is already registered.", strings.TrimSpace(req.Username))
		}
		if status == http.StatusInternalServerError {
			failErr(c, err)
			return
		}

		if isJSON(c) {
			fail(c, status, msg)
			return
		}
		flash(c, session.FlashError, msg)
		render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
		return
	}
	middleware.AuthEvents.WithLabelValues("register", "ok").Inc()

	if isJSON(c) {
		succeed(c, http.StatusCreated, "Registration successful!", nil)
		return
	}
	flash(c, session.FlashSuccess, "Registration successful! Please log in.")
	redirect(c, "/auth/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
}

func (h *Handler) Login(c *gin.Context) {
	req, err := bindCredentials(c)
	if err != nil {
		fail(c, http.StatusBadRequest, msgBadBody)
		return
	}

	ctx := c.Request.Context()
	u, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.AuthEvents.WithLabelValues("login", "error").Inc()

		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError || isJSON(c) {
			failErr(c, err)
			return
		}
		flash(c, session.FlashError, msg)
		render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in"})
		return
	}
	middleware.AuthEvents.WithLabelValues("login", "ok").Inc()

	s := middleware.CurrentSession(c)
	h.Sessions.Clear(ctx, s)
	s.SetUserID(u.ID)

	if isJSON(c) {
		succeed(c, http.StatusCreated, "Login successful!", nil)
		return
	}
	redirect(c, "/")
}

// Logout always succeeds, logged in or not.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if u := middleware.CurrentUser(c); u != nil {
		h.Auth.Logout(ctx, u.ID)
		middleware.AuthEvents.WithLabelValues("logout", "ok").Inc()
	}

	s := middleware.CurrentSession(c)
	h.Sessions.Clear(ctx, s)
	s.AddFlash(session.FlashSuccess, "You have been logged out")

	if isJSON(c) {
		succeed(c, http.StatusOK, "You have been logged out", nil)
		return
	}
	redirect(c, "/")
}

func (h *Handler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       u.ID,
		"username": u.Username,
		"is_admin": u.IsAdmin,
	})
}
