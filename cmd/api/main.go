package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-pos/internal/config"
	"go-inventory-pos/internal/finance"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/server"
	"go-inventory-pos/internal/ws"
	"go-inventory-pos/pkg/database"
	"go-inventory-pos/pkg/jwt"
	"go-inventory-pos/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	// 1. Load Env
	if !config.LoadDotEnv() {
		log.Warn(".env file not found, relying on system env")
	}
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), database.DefaultPool)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.WithError(err).Fatal("Failed to migrate schema")
	}

	// 3. Seed default privileges, roles, and admin user
	if err := server.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.WithError(err).Warn("Seeding failed")
	}

	// 4. Resolve the optional finance columns once
	schema, err := finance.Resolve(db, "sales", "items", finance.Overrides{
		PaymentField: cfg.PaymentField,
		CostField:    cfg.CostField,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to inspect finance columns")
	}

	tokens, err := jwt.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		log.WithError(err).Fatal("JWT_SECRET must be set")
	}

	// 5. Setup WebSocket Hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	app := server.New(server.Options{
		Config: cfg,
		DB:     db,
		Schema: schema,
		Hub:    wsHub,
		Tokens: tokens,
	})

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.WithError(err).Panic("Listener stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("Server exited")
}
