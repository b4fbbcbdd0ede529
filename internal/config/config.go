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

const (
	DefaultAddr           = ":8080"
	DefaultProductName    = "Data Ingestion Portal"
	DefaultPollInterval   = 7 * time.Second
	DefaultMaxWait        = 30 * time.Minute
	DefaultRequestTimeout = 15 * time.Second
)

// Config is built once at startup and handed to each component.
type Config struct {
	Addr           string        `yaml:"addr"`
	BearerToken    string        `yaml:"bearer_token"`
	JWTSecret      string        `yaml:"jwt_secret"`
	PublicAppURL   string        `yaml:"public_app_url"`
	ProductName    string        `yaml:"product_name"`
	DatabaseURL    string        `yaml:"database_url"`
	BackendURL     string        `yaml:"backend_url"`
	BackendToken   string        `yaml:"backend_token"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	MaxWait        time.Duration `yaml:"max_wait"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	FailureFilter  string        `yaml:"failure_filter"`
	AllowOrigins   []string      `yaml:"allow_origins"`
}

func Defaults() Config {
	return Config{
		Addr:           DefaultAddr,
		ProductName:    DefaultProductName,
		PollInterval:   DefaultPollInterval,
		MaxWait:        DefaultMaxWait,
		RequestTimeout: DefaultRequestTimeout,
		AllowOrigins:   []string{"http://localhost:3000"},
	}
}

// Load resolves configuration from defaults, an optional YAML file, a .env
// file in the working directory and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return cfg, fmt.Errorf("load .env: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("ADDR", &c.Addr)
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Addr = ":" + v
	}
	str("BEARER_TOKEN", &c.BearerToken)
	str("JWT_SECRET", &c.JWTSecret)
	str("PUBLIC_APP_URL", &c.PublicAppURL)
	str("PRODUCT_NAME", &c.ProductName)
	str("DATABASE_URL", &c.DatabaseURL)
	str("BACKEND_URL", &c.BackendURL)
	str("BACKEND_TOKEN", &c.BackendToken)
	str("DQ_FAILURE_FILTER", &c.FailureFilter)
	if v, ok := lookup("ALLOW_ORIGINS"); ok && v != "" {
		c.AllowOrigins = splitList(v)
	}

	for key, dst := range map[string]*time.Duration{
		"POLL_INTERVAL":   &c.PollInterval,
		"MAX_WAIT":        &c.MaxWait,
		"REQUEST_TIMEOUT": &c.RequestTimeout,
	} {
		if err := dur(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.BearerToken == "" && c.JWTSecret == "" {
		return fmt.Errorf("one of BEARER_TOKEN or JWT_SECRET is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxWait < c.PollInterval {
		return fmt.Errorf("max wait %s is shorter than poll interval %s", c.MaxWait, c.PollInterval)
	}
	return nil
}

// parseDuration accepts Go durations ("7s") and bare seconds ("7").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
