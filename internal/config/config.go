package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration. Values come from defaults, then an
// optional YAML file named by SNARE_CONFIG, then SNARE_* environment variables.
type Config struct {
	Environment  string `yaml:"environment"`
	HTTPPort     string `yaml:"http_port"`
	DatabasePath string `yaml:"database_path"`
	FrontendDir  string `yaml:"frontend_dir"`
	LogDir       string `yaml:"log_dir"`
	Debug        bool   `yaml:"debug"`

	// BackendURL is the base of the honeypot REST API, including /api/v1.
	BackendURL     string        `yaml:"backend_url"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`

	// PollInterval drives the live list views.
	PollInterval time.Duration `yaml:"poll_interval"`
	// BannerTTL is how long an error banner stays visible.
	BannerTTL time.Duration `yaml:"banner_ttl"`
	// HitAlertInterval controls new-hit alerts; zero disables them.
	HitAlertInterval time.Duration `yaml:"hit_alert_interval"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Environment:      "development",
		HTTPPort:         "8080",
		DatabasePath:     filepath.Join("data", "snare.db"),
		FrontendDir:      filepath.Clean(filepath.Join("..", "frontend", "dist")),
		LogDir:           filepath.Join("data", "logs"),
		BackendURL:       "http://localhost:3000/api/v1",
		BackendTimeout:   10 * time.Second,
		PollInterval:     3 * time.Second,
		BannerTTL:        3 * time.Second,
		HitAlertInterval: 30 * time.Second,
	}
}

// Load reads the config file and env vars and falls back to defaults so the
// console can boot with zero configuration.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

// Read layers the config file and env vars over the defaults without
// validating or touching the filesystem. Tools that only need the backend
// settings use it directly.
func Read() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("SNARE_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the console cannot run with.
func (c Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend url is required")
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("poll interval must be at least 1s, got %s", c.PollInterval)
	}
	if c.BannerTTL <= 0 {
		return fmt.Errorf("banner ttl must be positive, got %s", c.BannerTTL)
	}
	if c.HitAlertInterval < 0 {
		return fmt.Errorf("hit alert interval must not be negative")
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Environment = getEnv("SNARE_ENV", cfg.Environment)
	cfg.HTTPPort = getEnv("SNARE_HTTP_PORT", cfg.HTTPPort)
	cfg.DatabasePath = getEnv("SNARE_DB_PATH", cfg.DatabasePath)
	cfg.FrontendDir = getEnv("SNARE_FRONTEND_DIR", cfg.FrontendDir)
	cfg.LogDir = getEnv("SNARE_LOG_DIR", cfg.LogDir)
	cfg.BackendURL = getEnv("SNARE_BACKEND_URL", cfg.BackendURL)

	if v := os.Getenv("SNARE_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse SNARE_DEBUG: %w", err)
		}
		cfg.Debug = b
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SNARE_BACKEND_TIMEOUT", &cfg.BackendTimeout},
		{"SNARE_POLL_INTERVAL", &cfg.PollInterval},
		{"SNARE_BANNER_TTL", &cfg.BannerTTL},
		{"SNARE_HIT_ALERT_INTERVAL", &cfg.HitAlertInterval},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
