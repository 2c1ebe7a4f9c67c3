package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"userapi/docs"
	"userapi/internal/config"
	"userapi/internal/db"
	"userapi/internal/handler"
	"userapi/internal/logger"
	"userapi/internal/migrate"
	"userapi/internal/repository"
	"userapi/internal/router"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	shutdownTimeout    = 10 * time.Second
)

// @title User API
// @version 1.0
// @description Create, list and delete user records.
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	log.Info().Str("database", db.Redact(cfg.DatabaseURL)).Int("max_conns", cfg.DBMaxConns).Msg("connecting to database")
	gormDB, err := db.Open(cfg.DatabaseURL, db.Options{
		MaxOpenConns: cfg.DBMaxConns,
		Logger:       logger.NewGormLogger(log, slowQueryThreshold),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	log.Info().Msg("connected to database, running migrations")
	applied, err := migrate.New(gormDB, log).Up(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Strs("applied", applied).Msg("migrations complete")

	userRepo := repository.NewUserRepository(gormDB)

	e := echo.New()
	router.Register(
		e,
		cfg,
		log,
		handler.NewUserHandler(userRepo, log),
		handler.NewSystemHandler(userRepo, log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if err := db.Close(gormDB); err != nil {
		log.Error().Err(err).Msg("database close")
	}
}
