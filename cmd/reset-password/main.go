package main

import (
	"flag"

	"go-inventory-pos/internal/config"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/database"
	"go-inventory-pos/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Resets a user's password and closes the user's open session.
func main() {
	log := logger.GetLogger()

	if !config.LoadDotEnv() {
		log.Warn(".env file not found, relying on system env")
	}
	cfg := config.Load()

	email := flag.String("email", cfg.AdminEmail, "account to reset")
	password := flag.String("password", "", "new password (at least 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("-password must be at least 6 characters")
	}

	db, err := database.ConnectDB(cfg.DSN(), database.Pool{MaxIdle: 1, MaxOpen: 1})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByEmail(*email)
	if err != nil {
		log.WithError(err).WithField("email", *email).Fatal("User not found")
	}
	if err := user.SetPassword(*password); err != nil {
		log.WithError(err).Fatal("Failed to hash password")
	}
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		log.WithError(err).Fatal("Failed to update password")
	}
	if err := userRepo.UpdateTokenVersion(user.ID, uuid.New().String()); err != nil {
		log.WithError(err).Fatal("Failed to revoke session")
	}

	log.WithFields(logrus.Fields{"email": *email}).Info("Password reset")
}
