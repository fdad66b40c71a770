package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the console's runtime settings.
type Config struct {
	// ListenAddr is the address the console serves on.
	ListenAddr string
	// APIBaseURL is the school-statistics backend the pipeline talks to.
	APIBaseURL string
	// APIToken is the operator's bearer token for the backend, optional.
	APIToken string
	// CacheDir holds the durable local cache files.
	CacheDir string
}

// Load reads configuration from the environment, with a .env file honored
// when present, and falls back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}

	cfg := Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8050"),
		APIBaseURL: getEnv("STATS_API_URL", "http://localhost:8000/api"),
		APIToken:   os.Getenv("STATS_API_TOKEN"),
		CacheDir:   getEnv("CACHE_DIR", "./data/cache"),
	}

	log.Printf("Statistics backend: %s", cfg.APIBaseURL)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
