package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/propdesk/propdesk/config"
	"github.com/propdesk/propdesk/internal/core/auth"
	"github.com/propdesk/propdesk/internal/storage/postgres"
)

func main() {
	superAdminEmail := os.Getenv("SUPER_ADMIN_EMAIL")
	superAdminPassword := os.Getenv("SUPER_ADMIN_PASSWORD")

	if superAdminEmail == "" || superAdminPassword == "" {
		log.Fatal("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD environment variables are required")
	}

	cfg := config.Load()

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	authRepo := auth.NewRepository(db)

	existing, err := authRepo.GetUserByEmail(ctx, superAdminEmail)
	if err != nil {
		log.Fatalf("Failed to check for existing user: %v", err)
	}

	if existing != nil {
		if existing.IsSuperAdmin {
			fmt.Printf("Super admin user '%s' already exists\n", superAdminEmail)
			os.Exit(0)
		}
		if err := promoteSuperAdmin(ctx, authRepo, existing.ID); err != nil {
			log.Fatalf("Failed to promote existing user to super admin: %v", err)
		}
		fmt.Printf("Promoted existing user '%s' to super admin\n", superAdminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(superAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Email:        superAdminEmail,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Status:       "active",
		IsSuperAdmin: true,
	}

	if err := authRepo.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create super admin user: %v", err)
	}

	fmt.Printf("Successfully created super admin user: %s\n", superAdminEmail)
}

func promoteSuperAdmin(ctx context.Context, repo *auth.Repository, userID uuid.UUID) error {
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	now := time.Now()
	user.IsSuperAdmin = true
	user.SuperAdminPromotedAt = &now
	// SuperAdminPromotedBy stays nil for the bootstrap admin

	return repo.UpdateUser(ctx, user)
}
