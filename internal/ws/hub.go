package ws

import (
	"encoding/json"
	"sync"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
)

// Hub fans task events out to every open socket of the task's owner.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
	logger.Debug("ws client registered", "user_id", c.UserID, "sockets", len(set))
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// Publish implements service.TaskEvents.
func (h *Hub) Publish(userID int64, evt domain.TaskEvent) {
	msg, err := json.Marshal(evt)
	if err != nil {
		logger.Error("ws marshal event failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[userID] {
		h.sendLocked(c, msg)
	}
}

// Send queues msg for c if it is still registered.
func (h *Hub) Send(c *Client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.UserID][c]; ok {
		h.sendLocked(c, msg)
	}
}

func (h *Hub) sendLocked(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		logger.Warn("ws client too slow, dropping", "user_id", c.UserID)
		h.removeLocked(c)
	}
}

// Count returns the number of open sockets for userID.
func (h *Hub) Count(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close disconnects every client. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}
