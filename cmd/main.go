package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"samadhan/backend/internal/api/handler"
	"samadhan/backend/internal/complaint"
	"samadhan/backend/internal/config"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/notifyhub"
	"samadhan/backend/internal/storage"
	"samadhan/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Samadhan Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// Notification fan-out hub and the lifecycle service feeding it.
	hub := notifyhub.NewManagerService(s)
	go hub.Run()

	bridge := complaint.NewEventBridge(hub)
	svc := complaint.NewService(s, bridge)

	// Optional Telegram mirror of the admin room.
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		alert, err := telegram.NewAlertClient(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("WARNING: Telegram alerts disabled: %v", err)
		} else {
			alert.Register(hub)
		}
	}

	r := gin.Default()
	h := handler.NewHandler(svc, s, hub, []byte(cfg.JWTSecret))
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
