// Package config loads the service configuration from a YAML or TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"certpdf/internal/certificate/canvas"
	"certpdf/internal/certificate/layout"
	"certpdf/internal/certificate/qr"
	"certpdf/internal/domain"
)

// PostgresConfig points at the database holding API tokens and issued certificates.
// Host may also be a full postgres:// URL.
type PostgresConfig struct {
	Host     string `yaml:"host" toml:"host"`
	Port     int    `yaml:"port" toml:"port"`
	Database string `yaml:"database" toml:"database"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password" toml:"password"`
	SSLMode  string `yaml:"sslmode" toml:"sslmode"`
}

// Enabled reports whether a database has been configured at all.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// Palette overrides theme colors; empty entries keep the default.
type Palette struct {
	Paper  string `yaml:"paper" toml:"paper"`
	Ink    string `yaml:"ink" toml:"ink"`
	Muted  string `yaml:"muted" toml:"muted"`
	Navy   string `yaml:"navy" toml:"navy"`
	Gold   string `yaml:"gold" toml:"gold"`
	Wax    string `yaml:"wax" toml:"wax"`
	Shadow string `yaml:"shadow" toml:"shadow"`
}

type Config struct {
	Server struct {
		Host    string `yaml:"host" toml:"host"`
		Port    string `yaml:"port" toml:"port"`
		Prefork bool   `yaml:"prefork" toml:"prefork"`
	} `yaml:"server" toml:"server"`

	Logger struct {
		File       string `yaml:"file" toml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
		Compress   bool   `yaml:"compress" toml:"compress"`
		Level      string `yaml:"level" toml:"level"`
	} `yaml:"logger" toml:"logger"`

	Cache struct {
		RedisHost       string        `yaml:"redis_host" toml:"redis_host"`
		PDFCacheDB      int           `yaml:"pdf_cache_db" toml:"pdf_cache_db"`
		RateLimitDB     int           `yaml:"rate_limit_db" toml:"rate_limit_db"`
		PDFCacheEnabled bool          `yaml:"pdf_cache_enabled" toml:"pdf_cache_enabled"`
		PDFCacheTTL     time.Duration `yaml:"pdf_cache_ttl" toml:"pdf_cache_ttl"`
	} `yaml:"cache" toml:"cache"`

	Auth struct {
		Postgres            PostgresConfig `yaml:"postgres" toml:"postgres"`
		TokenReloadInterval time.Duration  `yaml:"token_reload_interval" toml:"token_reload_interval"`
	} `yaml:"auth" toml:"auth"`

	RateLimiter struct {
		Interval          time.Duration `yaml:"interval" toml:"interval"`
		EnableUserLimiter bool          `yaml:"enable_user_limiter" toml:"enable_user_limiter"`
		UserLimit         int           `yaml:"user_limit" toml:"user_limit"`
	} `yaml:"rate_limiter" toml:"rate_limiter"`

	Limits struct {
		MaxPDFBytes     int `yaml:"max_pdf_bytes" toml:"max_pdf_bytes"`
		MaxRequestBytes int `yaml:"max_request_bytes" toml:"max_request_bytes"`
	} `yaml:"limits" toml:"limits"`

	Certificate struct {
		VerifyBaseURL string  `yaml:"verify_base_url" toml:"verify_base_url"`
		PlatformName  string  `yaml:"platform_name" toml:"platform_name"`
		DirectorName  string  `yaml:"director_name" toml:"director_name"`
		DirectorTitle string  `yaml:"director_title" toml:"director_title"`
		QREncoder     string  `yaml:"qr_encoder" toml:"qr_encoder"`
		Palette       Palette `yaml:"palette" toml:"palette"`
	} `yaml:"certificate" toml:"certificate"`
}

// Load reads the file named by CONFIG_PATH, or config.yaml.
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return LoadFrom(path)
}

// LoadFrom reads path, fills defaults and panics on a missing file or an
// invalid value. The service cannot run half-configured.
func LoadFrom(path string) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("config: read %s: %v", path, err))
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(raw, &cfg)
	} else {
		err = yaml.Unmarshal(raw, &cfg)
	}
	if err != nil {
		panic(fmt.Sprintf("config: parse %s: %v", path, err))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.MaxSizeMB == 0 {
		c.Logger.MaxSizeMB = 10
	}
	if c.Cache.PDFCacheTTL == 0 {
		c.Cache.PDFCacheTTL = 24 * time.Hour
	}
	if c.Auth.TokenReloadInterval == 0 {
		c.Auth.TokenReloadInterval = time.Minute
	}
	if c.RateLimiter.Interval == 0 {
		c.RateLimiter.Interval = time.Minute
	}
	if c.Limits.MaxPDFBytes == 0 {
		c.Limits.MaxPDFBytes = 5 * 1024 * 1024
	}
	if c.Limits.MaxRequestBytes == 0 {
		c.Limits.MaxRequestBytes = 64 * 1024
	}
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	if c.RateLimiter.Interval < 0 {
		return fmt.Errorf("rate_limiter.interval must be positive")
	}
	if c.RateLimiter.UserLimit < 0 {
		return fmt.Errorf("rate_limiter.user_limit must not be negative")
	}
	if c.Auth.TokenReloadInterval < 0 {
		return fmt.Errorf("auth.token_reload_interval must be positive")
	}
	if c.Limits.MaxPDFBytes < 0 || c.Limits.MaxRequestBytes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	if c.Cache.PDFCacheEnabled && c.Cache.RedisHost == "" {
		return fmt.Errorf("cache.redis_host is required when pdf_cache_enabled is set")
	}
	if _, err := qr.NewEncoder(c.Certificate.QREncoder); err != nil {
		return fmt.Errorf("certificate.qr_encoder: %w", err)
	}
	if _, err := c.Certificate.Palette.colors(); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"certificate.platform_name":  c.Certificate.PlatformName,
		"certificate.director_name":  c.Certificate.DirectorName,
		"certificate.director_title": c.Certificate.DirectorTitle,
	} {
		if err := domain.CheckPrintable(field, value); err != nil {
			return err
		}
	}
	return nil
}

func (p Palette) colors() (map[string]canvas.Color, error) {
	out := map[string]canvas.Color{}
	for name, hex := range map[string]string{
		"paper": p.Paper, "ink": p.Ink, "muted": p.Muted, "navy": p.Navy,
		"gold": p.Gold, "wax": p.Wax, "shadow": p.Shadow,
	} {
		if hex == "" {
			continue
		}
		col, err := canvas.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("certificate.palette.%s: %w", name, err)
		}
		out[name] = col
	}
	return out, nil
}

// Theme merges the certificate branding over the default theme.
func (c Config) Theme() layout.Theme {
	t := layout.DefaultTheme()
	cert := c.Certificate
	if cert.PlatformName != "" {
		t.PlatformName = cert.PlatformName
	}
	if cert.DirectorName != "" {
		t.DirectorName = cert.DirectorName
	}
	if cert.DirectorTitle != "" {
		t.DirectorTitle = cert.DirectorTitle
	}

	colors, err := cert.Palette.colors()
	if err != nil {
		return t
	}
	for name, dst := range map[string]*canvas.Color{
		"paper": &t.Paper, "ink": &t.Ink, "muted": &t.Muted, "navy": &t.Navy,
		"gold": &t.Gold, "wax": &t.Wax, "shadow": &t.Shadow,
	} {
		if col, ok := colors[name]; ok {
			*dst = col
		}
	}
	return t
}
