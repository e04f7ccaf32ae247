package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tasktracker/internal/db"
	"tasktracker/internal/logger"

	"github.com/joho/godotenv"
)

// migrate_apply prints the embedded schema for DATABASE_URL's dialect, or
// applies it with -apply.
func main() {
	apply := flag.Bool("apply", false, "apply schema")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	target, err := db.ParseURL(dsn)
	if err != nil {
		logger.Fatal("bad DATABASE_URL", "error", err)
	}

	if !*apply {
		fmt.Print(db.SchemaFor(target.Dialect))
		return
	}

	ctx := context.Background()
	database, err := db.Open(ctx, dsn)
	if err != nil {
		logger.Fatal("open database failed", "error", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatal("apply schema failed", "error", err)
	}
	fmt.Printf("applied %s schema\n", target.Dialect)
}
