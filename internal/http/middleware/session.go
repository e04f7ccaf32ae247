package middleware

import (
	"context"
	"strings"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxUser     = "user"
	ctxSession  = "session"
	ctxSessions = "sessions"
)

// UserResolver maps a session's user id to an account.
type UserResolver interface {
	ResolveUser(ctx context.Context, id int64) (*domain.User, error)
}

// LoadSession decodes the session cookie and resolves the current user once
// per request. Lookup failures leave the request anonymous.
func LoadSession(sessions *session.Manager, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Load(c.Request)
		c.Set(ctxSessions, sessions)
		c.Set(ctxSession, s)

		if s.Authenticated() {
			u, err := users.ResolveUser(c.Request.Context(), s.UserID())
			if err != nil {
				logger.Error("resolve session user failed", "error", err)
			}
			if u != nil {
				c.Set(ctxUser, u)
			}
		}

		c.Next()
	}
}

// CurrentUser returns the logged-in user or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// CurrentSession returns the request's session. It is never nil after
// LoadSession has run.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// Flash queues a message on the request's session.
func Flash(c *gin.Context, category, msg string) {
	if s := CurrentSession(c); s != nil {
		s.AddFlash(category, msg)
	}
}

// SaveSession writes the session cookie if it changed. It must run before
// the response body is written.
func SaveSession(c *gin.Context) {
	s := CurrentSession(c)
	v, ok := c.Get(ctxSessions)
	if s == nil || !ok {
		return
	}
	if err := v.(*session.Manager).Save(c.Writer, s); err != nil {
		logger.Error("save session failed", "error", err)
	}
}

// WantsJSON reports whether the caller expects a JSON answer rather than a
// page or redirect.
func WantsJSON(c *gin.Context) bool {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/auth/api/") {
		return true
	}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
