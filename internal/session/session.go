package session

import "time"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Session is the per-request view of the session cookie.
type Session struct {
	ID        string
	userID    int64
	flashes   []Flash
	expiresAt time.Time

	// fromCookie is set when the session was decoded from a valid cookie.
	fromCookie bool
	modified   bool
}

func (s *Session) UserID() int64 {
	return s.userID
}

func (s *Session) SetUserID(id int64) {
	s.userID = id
	s.modified = true
}

// Authenticated reports whether a user id is stored.
func (s *Session) Authenticated() bool {
	return s.userID != 0
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(category, msg string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: msg})
	s.modified = true
}

// PopFlashes returns the queued messages and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.modified = true
	return out
}

// Modified reports whether Save has anything to write.
func (s *Session) Modified() bool {
	return s.modified
}

func (s *Session) empty() bool {
	return s.userID == 0 && len(s.flashes) == 0
}
