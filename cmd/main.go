package main

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hoangbru/blulog-api/config"
	"github.com/hoangbru/blulog-api/db"
	"github.com/hoangbru/blulog-api/internal/auth/handler"
	repo "github.com/hoangbru/blulog-api/internal/auth/repository/postgres"
	"github.com/hoangbru/blulog-api/internal/auth/service"
	"github.com/hoangbru/blulog-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalw("migrations failed", "err", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalw("database connection failed", "err", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg)
	mailer := service.NewSMTPMailer(cfg)
	userService := service.NewUserService(userRepo, tokenService, mailer, cfg.AppURL, log)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.Env, log)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		log.Infow("request", "method", c.Method(), "path", c.Path(), "status", c.Response().StatusCode())
		return err
	})

	handler.RegisterRoutes(app, authHandler)

	log.Infow("listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalw("server stopped", "err", err)
	}
}
