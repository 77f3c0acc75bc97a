package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds the settings of the reconciliation service.
type Config struct {
	Port         string        `yaml:"port"`
	LogLevel     string        `yaml:"log_level"`
	Development  bool          `yaml:"development"`
	GinMode      string        `yaml:"gin_mode"`
	Workers      int           `yaml:"workers"`
	ReportTTL    time.Duration `yaml:"report_ttl"`
	MaxDocuments int           `yaml:"max_documents"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Port:         "8084",
		LogLevel:     "info",
		GinMode:      "release",
		Workers:      runtime.NumCPU(),
		ReportTTL:    30 * time.Minute,
		MaxDocuments: 50000,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence. A .env file in the working directory
// is loaded first if present. path may be empty; RECONCILIATION_CONFIG is used then.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("erro ao carregar .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("RECONCILIATION_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("erro ao interpretar arquivo de configuração %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("GIN_MODE"); ok {
		cfg.GinMode = v
	}
	if v, ok := os.LookupEnv("DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEVELOPMENT inválido %q: %w", v, err)
		}
		cfg.Development = b
	}
	if v, ok := os.LookupEnv("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORKERS inválido %q: %w", v, err)
		}
		cfg.Workers = n
	}
	if v, ok := os.LookupEnv("MAX_DOCUMENTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_DOCUMENTS inválido %q: %w", v, err)
		}
		cfg.MaxDocuments = n
	}
	if v, ok := os.LookupEnv("REPORT_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REPORT_TTL inválido %q: %w", v, err)
		}
		cfg.ReportTTL = d
	}
	return nil
}

// Validate reports settings that cannot be used to start the service.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("porta não configurada")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("porta inválida %q", c.Port)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ReportTTL <= 0 {
		return fmt.Errorf("report_ttl deve ser positivo, recebido %s", c.ReportTTL)
	}
	if c.MaxDocuments <= 0 {
		return fmt.Errorf("max_documents deve ser positivo, recebido %d", c.MaxDocuments)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level inválido %q", c.LogLevel)
	}
	return nil
}
