package http

import (
	"context"
	"net/http"
	"strings"

	"tasktracker/internal/db"
	"tasktracker/internal/http/handlers"
	"tasktracker/internal/http/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"
	"tasktracker/internal/session"
	"tasktracker/internal/web"
	"tasktracker/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the router needs from the process.
type Deps struct {
	DB       *db.DB
	Sessions *session.Manager
	// Hub is created when nil.
	Hub           *ws.Hub
	Version       string
	AllowedOrigin string
	// Checks are optional dependencies reported by /readyz.
	Checks map[string]func(context.Context) error
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.Hub == nil {
		d.Hub = ws.NewHub()
	}

	users := repository.NewUserRepository(d.DB)
	tasks := repository.NewTaskRepository(d.DB)
	audit := service.NewAuditService(nil)

	authSvc := service.NewAuthService(users, audit)
	h := handlers.NewHandler(
		authSvc,
		service.NewTaskService(tasks, d.Hub, audit),
		service.NewAdminService(users, audit),
		d.Sessions,
		d.Hub,
		d.AllowedOrigin,
	)

	healthHandler := handlers.NewHealthHandler(d.DB, d.Version)
	for name, check := range d.Checks {
		healthHandler.AddCheck(name, check)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.AllowedOrigin))
	r.Use(middleware.LoadSession(d.Sessions, authSvc))
	r.SetHTMLTemplate(web.MustTemplates())

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", middleware.LoginRequired(), h.Index)
	r.GET("/ws", h.WS)

	registerAuthRoutes(r.Group("/auth"), h)
	registerTaskRoutes(r.Group("/api"), h)

	quick := r.Group("/tasks", middleware.LoginRequired())
	{
		quick.GET("/", h.QuickTasksPage)
		quick.POST("/", h.QuickTaskCreate)
	}

	return r
}

func registerAuthRoutes(auth *gin.RouterGroup, h *handlers.Handler) {
	auth.GET("/register", h.RegisterPage)
	auth.POST("/register", h.Register)
	auth.GET("/login", h.LoginPage)
	auth.POST("/login", h.Login)
	auth.GET("/logout", h.Logout)
	auth.POST("/logout", h.Logout)

	// Admin
	auth.GET("/admin/users", middleware.AdminRequired(), h.AdminUsersPage)
	auth.GET("/api/users", middleware.AdminRequired(), h.ListUsers)
	auth.DELETE("/api/users/:id", middleware.AdminRequired(), h.DeleteUser)

	auth.GET("/api/me", middleware.LoginRequired(), h.Me)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.Use(middleware.LoginRequired())

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PUT("/tasks/:id/toggle", h.ToggleTask)
}

// Handler is the router behind MethodOverride, ready for http.Server.
func Handler(d Deps) http.Handler {
	return MethodOverride(NewRouter(d))
}

// MethodOverride lets HTML forms reach PUT and DELETE routes: a form POST
// with _method=PUT or _method=DELETE is rewritten before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ct := r.Header.Get("Content-Type")
			if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
				switch m := strings.ToUpper(r.PostFormValue("_method")); m {
				case http.MethodPut, http.MethodDelete:
					r.Method = m
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
