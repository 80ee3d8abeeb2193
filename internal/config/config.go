package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TokenTTL is how long issued auth tokens stay valid.
const TokenTTL = 30 * 24 * time.Hour

// Config holds everything read from the environment at startup.
// Call godotenv.Load before Load if a .env file is used.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	// Optional: when both are set, admin-room notifications are mirrored
	// into a Telegram chat.
	TelegramBotToken    string
	TelegramAdminChatID int64
}

// Load reads the configuration from environment variables, applying
// development defaults where a value is missing.
func Load() *Config {
	chatID, _ := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)

	return &Config{
		Port:                getenv("PORT", "5000"),
		DBHost:              getenv("DB_HOST", "localhost"),
		DBUser:              getenv("DB_USER", "user"),
		DBPassword:          getenv("DB_PASSWORD", "password"),
		DBName:              getenv("DB_NAME", "samadhan"),
		DBPort:              getenv("DB_PORT", "5432"),
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:           getenv("JWT_SECRET", "dev-secret-change-me"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChatID: chatID,
	}
}

// DSN assembles the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
