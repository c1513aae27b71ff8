package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Addr            string
	FeedURL         string
	FeedDir         string
	RefreshInterval time.Duration
	DBPath          string
	HistoryLimit    int
	MockMode        bool
	Debug           bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("FLEETDASH_ADDR", ":8080")
	cfg.FeedURL = getEnv("FLEETDASH_FEED_URL", "")
	cfg.FeedDir = getEnv("FLEETDASH_FEED_DIR", "data")
	cfg.MockMode = getEnvBool("FLEETDASH_MOCK", false)
	cfg.DBPath = getEnv("FLEETDASH_DB", getDefaultDBPath())
	refreshSecs := getEnvInt("FLEETDASH_REFRESH", 30)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.FeedURL, "feed-url", cfg.FeedURL, "Base URL of the JSON feed (empty to read from -feed-dir)")
	flag.StringVar(&cfg.FeedDir, "feed-dir", cfg.FeedDir, "Directory containing the JSON feed documents")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.IntVar(&refreshSecs, "refresh", refreshSecs, "Refresh interval in seconds")
	flag.IntVar(&cfg.HistoryLimit, "history", 288, "Maximum snapshot history entries returned by the API")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run in mock mode (generated fleet data)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	cfg.RefreshInterval = time.Duration(refreshSecs) * time.Second

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "fleetdash.db"
	}

	// Use ~/.fleetdash directory
	dir := filepath.Join(home, ".fleetdash")

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .fleetdash directory, using current dir: %v", err)
		return "fleetdash.db"
	}

	return filepath.Join(dir, "fleetdash.db")
}
