package ws

import (
	"net/http"
	"net/url"

	"tasktracker/internal/logger"

	"github.com/gorilla/websocket"
)

// Upgrader accepts same-host origins, plus allowedOrigin when set.
func Upgrader(allowedOrigin string) *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if allowedOrigin != "" && origin == allowedOrigin {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return u.Host == r.Host
		},
	}
}

// Serve upgrades the request and streams userID's task events on it.
// The caller has already authenticated the request.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64, upgrader *websocket.Upgrader) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logger.Debug("ws upgrade failed", "error", err)
		return err
	}

	client := NewClient(userID, conn, h)
	go client.Run()
	return nil
}
