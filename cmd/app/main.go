package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/db"
	httpServer "tasktracker/internal/http"
	"tasktracker/internal/logger"
	"tasktracker/internal/session"
	"tasktracker/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	database := db.Connect(cfg.DatabaseURL)
	defer database.Close()

	opts := session.Options{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.SessionSecure,
	}
	checks := map[string]func(context.Context) error{}
	if rv := session.NewRedisRevoker(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rv != nil {
		defer rv.Close()
		opts.Revoker = rv
		checks["redis"] = rv.Ping
	}

	hub := ws.NewHub()
	defer hub.Close()

	handler := httpServer.Handler(httpServer.Deps{
		DB:            database,
		Sessions:      session.NewManager(cfg.SecretKey, opts),
		Hub:           hub,
		Version:       cfg.AppVersion,
		AllowedOrigin: cfg.AllowedOrigin,
		Checks:        checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
