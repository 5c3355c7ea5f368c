package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StoreBackend  string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	Env           string
	ClientURL     string
	CloudinaryURL string
	RedisURL      string
	RatePerMinute int
	GinMode       string
}

// Production reports whether cookies must carry the Secure flag.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		StoreBackend:  getEnv("STORE", "mongo"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "kindred"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Env:           getEnv("APP_ENV", "development"),
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:5173"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	rate, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "60"))
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a positive integer")
	}
	cfg.RatePerMinute = rate

	switch cfg.StoreBackend {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("STORE must be mongo or memory, got %q", cfg.StoreBackend)
	}

	var missing []string
	if cfg.StoreBackend == "mongo" && cfg.MongoURI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
