package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/fundacion-horas/horas-backend/internal/config"
	"github.com/fundacion-horas/horas-backend/internal/db"
)

// Loads demo data into the configured database: one admin account, a handful
// of interns with goals set, and a catalog activity per category.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	if err := db.SeedDemo(ctx, database); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed complete")
}
