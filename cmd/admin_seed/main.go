// Command admin_seed creates the initial admin account from environment
// variables. It is idempotent: an existing admin email is left untouched.
package main

import (
	"context"
	"log"
	"os"

	"github.com/YhormT/kelis-backend/internal/config"
	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminName := config.GetEnv("ADMIN_NAME", "Administrator")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")

	if adminEmail == "" || adminPassword == "" || adminPhone == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	store := repositories.NewStore(repositories.DB)
	ctx := context.Background()

	if _, err := store.GetUserByEmail(ctx, adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	} else if !errs.IsNotFound(err) {
		log.Fatalf("failed to check for existing admin: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashedPassword),
		Phone:    adminPhone,
		Role:     models.RoleAdmin,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Println("admin account created successfully")
}
