// Package config resolves client configuration from, in increasing
// precedence: built-in defaults, an optional config.yaml in the profile
// directory, and environment variables (with .env support).
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseURL of the dashboard backend, e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url"`

	// UserID namespaces persisted page state to the logged-in user.
	UserID string `yaml:"user_id"`

	// Cookie is the raw Cookie header of an authenticated session. When
	// CookieFile is set its contents win over Cookie.
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`

	// ProfileDir holds the state database, log file and config.yaml.
	ProfileDir string `yaml:"-"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Load resolves the configuration. profileDir may be "" for the default
// (~/.watchboard).
func Load(profileDir string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	if profileDir == "" {
		profileDir = os.Getenv("WATCHBOARD_PROFILE")
	}
	if profileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		profileDir = filepath.Join(home, ".watchboard")
	}

	cfg := &Config{
		BaseURL:    "http://localhost:8000",
		ProfileDir: profileDir,
		LogLevel:   "info",
	}

	// Optional file layer.
	if b, err := os.ReadFile(filepath.Join(profileDir, "config.yaml")); err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}

	// Env layer wins.
	overlayEnv(&cfg.BaseURL, "WATCHBOARD_BASE_URL")
	overlayEnv(&cfg.UserID, "WATCHBOARD_USER_ID")
	overlayEnv(&cfg.Cookie, "WATCHBOARD_COOKIE")
	overlayEnv(&cfg.CookieFile, "WATCHBOARD_COOKIE_FILE")
	overlayEnv(&cfg.LogFile, "WATCHBOARD_LOG_FILE")
	overlayEnv(&cfg.LogLevel, "WATCHBOARD_LOG_LEVEL")

	if cfg.CookieFile != "" {
		b, err := os.ReadFile(cfg.CookieFile)
		if err != nil {
			return nil, err
		}
		cfg.Cookie = strings.TrimSpace(string(b))
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(profileDir, "watchboard.log")
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

func overlayEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
