// Operator CLI for account administration: create the first admin, promote
// an existing user, or deactivate an account.
package main

import (
	"fmt"
	"log"
	"os"

	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewStorageService(db, nil) // No redis needed for the CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin <name> <email> <password> | promote <email> | deactivate <email>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <name> <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(s, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin account %s created.\n", os.Args[3])
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <email>")
			os.Exit(1)
		}
		if err := setRole(s, os.Args[2], models.RoleAdmin); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s promoted to admin.\n", os.Args[2])
	case "deactivate":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin deactivate <email>")
			os.Exit(1)
		}
		if err := deactivate(s, os.Args[2]); err != nil {
			log.Fatalf("Error deactivating user: %v", err)
		}
		fmt.Printf("User %s deactivated.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s storage.Storage, name, email, password string) error {
	existing, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.CreateUser(&models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	})
}

func setRole(s storage.Storage, email, role string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", email)
	}
	user.Role = role
	return s.SaveUser(user)
}

func deactivate(s storage.Storage, email string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", email)
	}
	user.IsActive = false
	return s.SaveUser(user)
}
