package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Addr           string
	PostgresDSN    string
	CatalogBaseURL string
	CatalogAPIKey  string
	CatalogSet     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present. The signing secret is a startup
// precondition: Load fails when BINDER_AUTH_SECRET is absent.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if strings.TrimSpace(os.Getenv("BINDER_AUTH_SECRET")) == "" {
		return nil, errors.New("config: BINDER_AUTH_SECRET is required")
	}

	cfg := &Config{
		Addr:           getenv("BINDER_ADDR", ":8080"),
		PostgresDSN:    os.Getenv("BINDER_PG_DSN"),
		CatalogBaseURL: getenv("BINDER_CATALOG_URL", "https://api.pokemontcg.io/v2"),
		CatalogAPIKey:  os.Getenv("BINDER_CATALOG_API_KEY"),
		CatalogSet:     getenv("BINDER_CATALOG_SET", "Twilight Masquerade"),
	}
	if cfg.PostgresDSN == "" {
		return nil, errors.New("config: BINDER_PG_DSN is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
