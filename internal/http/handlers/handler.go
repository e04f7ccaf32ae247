package handlers

import (
	"tasktracker/internal/service"
	"tasktracker/internal/session"
	"tasktracker/internal/ws"

	"github.com/gorilla/websocket"
)

type Handler struct {
	Auth     *service.AuthService
	Tasks    *service.TaskService
	Admin    *service.AdminService
	Sessions *session.Manager
	Hub      *ws.Hub

	upgrader *websocket.Upgrader
}

func NewHandler(auth *service.AuthService, tasks *service.TaskService, admin *service.AdminService,
	sessions *session.Manager, hub *ws.Hub, allowedOrigin string) *Handler {
	return &Handler{
		Auth:     auth,
		Tasks:    tasks,
		Admin:    admin,
		Sessions: sessions,
		Hub:      hub,
		upgrader: ws.Upgrader(allowedOrigin),
	}
}
