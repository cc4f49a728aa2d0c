package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/config"
	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-admin/main.go <admin-name> <api-key>")
		fmt.Println("Example: go run cmd/create-admin/main.go \"Store Owner\" \"owner-api-key-12345\"")
		os.Exit(1)
	}

	adminName := os.Args[1]
	apiKey := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the API key
	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Create admin
	admin := &domain.Admin{
		Name:       adminName,
		APIKeyHash: string(apiKeyHash),
		IsActive:   true,
	}

	err = repos.Admin.Create(context.Background(), admin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully!\n\n")
	fmt.Printf("Admin ID: %s\n", admin.ID.String())
	fmt.Printf("Admin Name: %s\n", admin.Name)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\nIMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this API key in the X-API-Key header:\n")
	fmt.Printf("X-API-Key: %s\n", apiKey)
}
