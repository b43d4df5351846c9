package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries client configuration resolved from the environment
type Config struct {
	// APIBaseURL is the origin plus /api prefix every domain module calls
	APIBaseURL string
	// StatusBaseURL is the unversioned origin serving the public /db-status check
	StatusBaseURL string
	// HTTPTimeout bounds every request so lost connectivity cannot hang the CLI
	HTTPTimeout time.Duration
	// TokenFile is where the credential store persists between runs
	TokenFile string

	// Demo server settings
	DemoPort   string
	DemoDBPath string
	JWTSecret  string
}

// Load reads .env (when present) and environment variables, applying defaults
// for anything unset
func Load() Config {
	// A missing .env is fine; real deployments set variables directly
	_ = godotenv.Load(".env")

	cfg := Config{
		APIBaseURL:    getenv("ROTI_API_BASE_URL", "http://localhost:5000/api"),
		StatusBaseURL: getenv("ROTI_STATUS_BASE_URL", "http://localhost:5000"),
		HTTPTimeout:   30 * time.Second,
		TokenFile:     getenv("ROTI_TOKEN_FILE", defaultTokenFile()),
		DemoPort:      getenv("ROTI_DEMO_PORT", "5000"),
		DemoDBPath:    getenv("ROTI_DEMO_DB", "file::memory:?cache=shared"),
		JWTSecret:     getenv("ROTI_JWT_SECRET", "roti_demo_secret"),
	}

	if v := os.Getenv("ROTI_HTTP_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.HTTPTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "roti-credentials.json")
	}
	return filepath.Join(home, ".config", "roti", "credentials.json")
}
