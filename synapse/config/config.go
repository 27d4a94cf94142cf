package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxSnapshotBytes is the largest page snapshot the widget accepts.
const DefaultMaxSnapshotBytes = 8 << 20

type Config struct {
	APIBaseURL       string
	ListenAddr       string
	MinQueryLength   int
	Debounce         time.Duration
	RequestTimeout   time.Duration
	StaleGuard       bool
	// MaxSnapshotBytes caps one widget websocket message, page snapshot included.
	MaxSnapshotBytes int64
	Fetcher          string
	SchemaPath       string
	Schema           Schema
	HarvestSecret    string
	LogDir           string
}

// LoadConfig reads .env (if present) and the process environment. A schema
// file that fails to load leaves the built-in schema in place and the error
// is returned alongside the config.
func LoadConfig() (Config, error) {
	// missing .env is the normal case outside development
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:       strings.TrimRight(getEnv("SYNAPSE_API_BASE_URL", "http://127.0.0.1:5001"), "/"),
		ListenAddr:       getEnv("SYNAPSE_LISTEN_ADDR", ":8000"),
		MinQueryLength:   getEnvInt("SYNAPSE_MIN_QUERY_LENGTH", 2),
		Debounce:         time.Duration(getEnvInt("SYNAPSE_DEBOUNCE_MS", 300)) * time.Millisecond,
		RequestTimeout:   time.Duration(getEnvInt("SYNAPSE_REQUEST_TIMEOUT_MS", 0)) * time.Millisecond,
		StaleGuard:       getEnvBool("SYNAPSE_STALE_GUARD", false),
		MaxSnapshotBytes: int64(getEnvInt("SYNAPSE_MAX_SNAPSHOT_BYTES", DefaultMaxSnapshotBytes)),
		Fetcher:          getEnv("SYNAPSE_FETCHER", "http"),
		SchemaPath:       getEnv("SYNAPSE_SCHEMA", ""),
		Schema:           DefaultSchema(),
		HarvestSecret:    getEnv("SYNAPSE_HARVEST_SECRET", ""),
		LogDir:           getEnv("LOG_DIR", "./logs"),
	}

	if cfg.SchemaPath != "" {
		schema, err := LoadSchema(cfg.SchemaPath)
		if err != nil {
			return cfg, err
		}
		cfg.Schema = schema
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
