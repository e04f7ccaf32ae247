package main

import (
	"context"
	"flag"
	"os"

	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"
)

// create_admin creates an admin account, or promotes an existing one.
//
//	go run ./cmd/create_admin -username root -password secret
//
// ADMIN_USERNAME and ADMIN_PASSWORD are used when the flags are omitted.
func main() {
	username := flag.String("username", os.Getenv("ADMIN_USERNAME"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "password for a new account")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if *username == "" {
		logger.Fatal("username not set (use -username or ADMIN_USERNAME)")
	}

	database := db.Connect(cfg.DatabaseURL)
	defer database.Close()

	admin := service.NewAdminService(repository.NewUserRepository(database), service.NewAuditService(nil))
	u, created, err := admin.EnsureAdmin(context.Background(), *username, *password)
	if err != nil {
		logger.Fatal("ensure admin failed", "username", *username, "error", err)
	}

	if created {
		logger.Info("admin created", "id", u.ID, "username", u.Username)
		return
	}
	logger.Info("user is admin", "id", u.ID, "username", u.Username)
}
