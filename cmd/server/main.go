package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fundacion-horas/horas-backend/internal/config"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/httpapi"
	"github.com/fundacion-horas/horas-backend/internal/jobs"
	"github.com/fundacion-horas/horas-backend/internal/logging"
	"github.com/fundacion-horas/horas-backend/internal/observability"
	"github.com/fundacion-horas/horas-backend/internal/service"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("db connect failed", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("migrations failed", "err", err)
	}

	svc := service.New(database, lg.Sugar)
	handler := httpapi.NewHandler(svc, lg.Sugar)
	router := httpapi.Router(handler, httpapi.AuthConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
	}, database)

	jobs.Start(ctx, database, lg.Sugar)
	httpapi.Start(ctx, cfg.HTTPAddr, router)

	lg.Sugar.Infow("server started", "addr", cfg.HTTPAddr, "env", cfg.Env, "version", version)
	<-ctx.Done()
	lg.Sugar.Infow("shutting down")
}
