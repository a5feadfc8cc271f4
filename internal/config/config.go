package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAddr         = ":8080"
	defaultDatabasePath = "data/cardgame.db"
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

type Config struct {
	Addr         string
	DatabasePath string

	AppEnv                string
	WSAllowedOrigins      []string
	DevWebSocketsAllowAll bool

	// HistoryLimit is the default page size for the operation journal.
	HistoryLimit int
	TracesExport string
}

func (c Config) IsDevelopment() bool { return c.AppEnv == "development" }

// LoadFromEnv reads configuration from the environment, after loading a .env
// file from the working directory if one exists.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         strings.TrimSpace(os.Getenv("BACKEND_ADDR")),
		DatabasePath: strings.TrimSpace(os.Getenv("DATABASE_PATH")),
		AppEnv:       strings.TrimSpace(os.Getenv("APP_ENV")),
		HistoryLimit: defaultHistoryLimit,
		TracesExport: strings.TrimSpace(os.Getenv("OTEL_TRACES_EXPORTER")),
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	if cfg.TracesExport == "" {
		cfg.TracesExport = "stdout"
	}

	// BACKEND_ADDR wins over PORT, which hosting platforms usually set.
	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	if v := os.Getenv("WS_ALLOWED_ORIGINS"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, p)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEV_WEBSOCKETS_ALLOW_ALL")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevWebSocketsAllowAll = b
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: invalid DEV_WEBSOCKETS_ALLOW_ALL=%q, using false\n", v)
		}
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxHistoryLimit {
			cfg.HistoryLimit = n
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: invalid HISTORY_LIMIT=%q, using default %d\n", v, defaultHistoryLimit)
		}
	}

	switch cfg.TracesExport {
	case "stdout", "none", "noop":
	default:
		return Config{}, fmt.Errorf("invalid env: OTEL_TRACES_EXPORTER=%q (want stdout|none)", cfg.TracesExport)
	}

	return cfg, nil
}
