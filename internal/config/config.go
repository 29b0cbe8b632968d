// Package config loads jobcached's runtime configuration from environment
// variables (optionally via a .env file) with an optional YAML file overlay
// for values that don't fit comfortably in the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is everything cmd/jobcached needs to wire a JobCache, its producer,
// its worker pool, and its metrics server.
type Config struct {
	Cache struct {
		MaximumSize int `yaml:"maximum_size"`
		MinimumSize int `yaml:"minimum_size"`
	} `yaml:"cache"`

	Worker struct {
		Count          int           `yaml:"count"`
		Threshold      int           `yaml:"threshold"`
		ThresholdIsAny bool          `yaml:"threshold_any"`
		RetryAttempts  int           `yaml:"retry_attempts"`
		RetryInitial   time.Duration `yaml:"retry_initial"`
		RetryMax       time.Duration `yaml:"retry_max"`
		PinWorkers     bool          `yaml:"pin_workers"`
	} `yaml:"worker"`

	Producer struct {
		DatabaseURL  string        `yaml:"database_url"`
		Queue        string        `yaml:"queue"`
		PollInterval time.Duration `yaml:"poll_interval"`
		BatchSize    int           `yaml:"batch_size"`
	} `yaml:"producer"`

	Metrics struct {
		Enabled  bool          `yaml:"enabled"`
		Addr     string        `yaml:"addr"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"metrics"`
}

// Load reads .env (if present, missing is not an error), then env vars, then
// overlays yamlPath (if non-empty) on top. Later sources win.
func Load(yamlPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := defaultConfig()
	applyEnv(cfg)

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", yamlPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", yamlPath, err)
		}
	}

	return cfg, validate(cfg)
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Cache.MaximumSize = 1000
	cfg.Cache.MinimumSize = 0
	cfg.Worker.Count = 0 // 0 means runtime.GOMAXPROCS(0), decided by the pool
	cfg.Worker.ThresholdIsAny = true
	cfg.Worker.RetryAttempts = 3
	cfg.Worker.RetryInitial = 200 * time.Millisecond
	cfg.Worker.RetryMax = 5 * time.Second
	cfg.Producer.Queue = "default"
	cfg.Producer.PollInterval = time.Second
	cfg.Producer.BatchSize = 50
	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = ":9090"
	cfg.Metrics.Interval = 5 * time.Second
	return cfg
}

func applyEnv(cfg *Config) {
	if v, ok := lookupInt("JOBCACHE_MAXIMUM_SIZE"); ok {
		cfg.Cache.MaximumSize = v
	}
	if v, ok := lookupInt("JOBCACHE_MINIMUM_SIZE"); ok {
		cfg.Cache.MinimumSize = v
	}
	if v, ok := lookupInt("JOBCACHE_WORKERS"); ok {
		cfg.Worker.Count = v
	}
	if v, ok := os.LookupEnv("JOBCACHE_DATABASE_URL"); ok {
		cfg.Producer.DatabaseURL = v
	}
	if v, ok := os.LookupEnv("JOBCACHE_QUEUE"); ok {
		cfg.Producer.Queue = v
	}
	if v, ok := lookupDuration("JOBCACHE_POLL_INTERVAL"); ok {
		cfg.Producer.PollInterval = v
	}
	if v, ok := parseBoolEnv("JOBCACHE_METRICS_ENABLED"); ok {
		cfg.Metrics.Enabled = v
	}
	if v, ok := os.LookupEnv("JOBCACHE_METRICS_ADDR"); ok {
		cfg.Metrics.Addr = v
	}
}

func validate(cfg *Config) error {
	if cfg.Cache.MaximumSize <= 0 {
		return fmt.Errorf("config: cache.maximum_size must be greater than zero")
	}
	if cfg.Cache.MinimumSize < 0 {
		return fmt.Errorf("config: cache.minimum_size must be at least zero")
	}
	if cfg.Producer.DatabaseURL == "" {
		return fmt.Errorf("config: producer.database_url (or JOBCACHE_DATABASE_URL) is required")
	}
	return nil
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupDuration(key string) (time.Duration, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return d, true
}

// parseBoolEnv accepts true/1/yes/on and false/0/no/off, case-insensitive.
// An unset or unrecognized value reports ok=false and leaves the default.
func parseBoolEnv(key string) (value bool, ok bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}
