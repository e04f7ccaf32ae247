package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tasktracker/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevoked      = errors.New("session revoked")
)

type claims struct {
	UserID  int64   `json:"uid,omitempty"`
	Flashes []Flash `json:"fl,omitempty"`
	jwt.RegisteredClaims
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// Revoker is optional; without it Clear only forgets the cookie client-side.
	Revoker Revoker
}

// Manager signs sessions into an HS256 JWT carried in a cookie.
type Manager struct {
	secret  []byte
	cookie  string
	ttl     time.Duration
	secure  bool
	revoker Revoker
	now     func() time.Time
}

func NewManager(secret string, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:  []byte(secret),
		cookie:  opts.CookieName,
		ttl:     opts.TTL,
		secure:  opts.Secure,
		revoker: opts.Revoker,
		now:     time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookie
}

// Load returns the session carried by r. Missing, tampered, expired or
// revoked cookies all yield an empty session.
func (m *Manager) Load(r *http.Request) *Session {
	ck, err := r.Cookie(m.cookie)
	if err != nil || ck.Value == "" {
		return m.fresh()
	}

	s, err := m.Decode(r.Context(), ck.Value)
	if err != nil {
		logger.Debug("discarding session cookie", "error", err)
		s = m.fresh()
		// overwrite the bad cookie on the way out
		s.modified = true
	}
	return s
}

// Save writes the cookie if the session changed during the request.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if s == nil || !s.modified {
		return nil
	}

	if s.empty() {
		http.SetCookie(w, m.cookieFor("", -1))
		s.modified = false
		return nil
	}

	token, err := m.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookieFor(token, int(m.ttl.Seconds())))
	s.modified = false
	return nil
}

// Clear drops everything in s and gives it a new id. The old id is revoked
// so a copy of the previous cookie stops working.
func (m *Manager) Clear(ctx context.Context, s *Session) {
	if s.fromCookie && m.revoker != nil {
		if err := m.revoker.Revoke(ctx, s.ID, s.expiresAt.Sub(m.now())); err != nil {
			logger.Warn("session revoke failed", "error", err)
		}
	}

	s.ID = uuid.NewString()
	s.userID = 0
	s.flashes = nil
	s.fromCookie = false
	s.modified = true
}

// Encode signs s with a fresh expiry.
func (m *Manager) Encode(s *Session) (string, error) {
	now := m.now()
	s.expiresAt = now.Add(m.ttl)

	c := claims{
		UserID:  s.userID,
		Flashes: s.flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Decode verifies a token produced by Encode.
func (m *Manager) Decode(ctx context.Context, token string) (*Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidToken)
	}

	if m.revoker != nil {
		revoked, err := m.revoker.IsRevoked(ctx, c.ID)
		if err != nil {
			// redis outage must not log everyone out
			logger.Warn("session revocation check failed", "error", err)
		} else if revoked {
			return nil, ErrRevoked
		}
	}

	return &Session{
		ID:         c.ID,
		userID:     c.UserID,
		flashes:    c.Flashes,
		expiresAt:  c.ExpiresAt.Time,
		fromCookie: true,
	}, nil
}

func (m *Manager) fresh() *Session {
	return &Session{ID: uuid.NewString()}
}

func (m *Manager) cookieFor(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
