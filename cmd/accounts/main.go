// Package main provides account management utilities for Telanix.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"telanix/internal/config"
	"telanix/internal/database"
	"telanix/internal/models"

	"gorm.io/gorm"
)

// Deactivated accounts stay in the ledger with their engagement intact
// but can no longer log in.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/accounts/main.go deactivate <user_id>   - Disable an account's login")
		fmt.Println("  go run ./cmd/accounts/main.go activate <user_id>     - Re-enable an account's login")
		fmt.Println("  go run ./cmd/accounts/main.go list-inactive          - List deactivated accounts")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "deactivate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/accounts/main.go deactivate <user_id>")
			os.Exit(1)
		}
		setActive(db, os.Args[2], false)

	case "activate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/accounts/main.go activate <user_id>")
			os.Exit(1)
		}
		setActive(db, os.Args[2], true)

	case "list-inactive":
		listInactive(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setActive(db *gorm.DB, userID string, active bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsActive == active {
		fmt.Printf("User %s (ID: %d) is already active=%v\n", user.Email, user.ID, active)
		return
	}

	user.IsActive = active
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if active {
		fmt.Printf("✅ Successfully re-activated %s (ID: %d)\n", user.Email, user.ID)
	} else {
		fmt.Printf("✅ Successfully deactivated %s (ID: %d)\n", user.Email, user.ID)
	}
}

func listInactive(db *gorm.DB) {
	var users []models.User
	if err := db.Where("is_active = ?", false).Find(&users).Error; err != nil {
		log.Fatalf("Failed to fetch accounts: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No deactivated accounts found")
		return
	}

	fmt.Println("\n📋 Deactivated Accounts:")
	fmt.Println("─────────────────────────────────────")
	for _, user := range users {
		fmt.Printf("ID: %d | Name: %s | Email: %s\n", user.ID, user.Name, user.Email)
	}
	fmt.Println("─────────────────────────────────────")
}
