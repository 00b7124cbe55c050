// config.go - Handles configuration for the project

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Values come from the environment
// (optionally via a .env file) with sensible development defaults.
type Config struct {
	Addr           string        // HTTP listen address
	DBPath         string        // Path to the SQLite database file
	UploadDir      string        // Directory for uploaded avatar files
	SessionTTL     time.Duration // Absolute session lifetime
	MaxAvatarBytes int64         // Upload size cap for avatars
	StorageTimeout time.Duration // Per-request bound on database calls
	Production     bool          // Enables Secure cookies

	// Optional default admin, created at startup only when CreateAdmin is set.
	CreateAdmin   bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:           getEnv("ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "trees.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "public/uploads"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		MaxAvatarBytes: getInt64("MAX_AVATAR_BYTES", 5*1024*1024),
		StorageTimeout: getDuration("STORAGE_TIMEOUT", 5*time.Second),
		Production:     getBool("PRODUCTION", false),
		CreateAdmin:    getBool("CREATE_ADMIN", false),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
