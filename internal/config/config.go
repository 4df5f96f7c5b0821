package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr         string          `yaml:"listen_addr" json:"listen_addr" validate:"required"`
	StorageRoot        string          `yaml:"storage_root" json:"storage_root" validate:"required"`
	FrontendDir        string          `yaml:"frontend_dir" json:"frontend_dir"`
	LogLevel           string          `yaml:"log_level" json:"log_level" validate:"oneof=DEBUG INFO WARN ERROR"`
	ShutdownTimeoutSec int             `yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec" validate:"gt=0"`
	MaxUploadMB        int64           `yaml:"max_upload_mb" json:"max_upload_mb" validate:"gte=0"`
	StripRootName      *bool           `yaml:"strip_root_name" json:"strip_root_name"`
	GC                 GCConfig        `yaml:"gc" json:"gc"`
	RateLimit          RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// GCConfig управляет очисткой брошенных временных файлов загрузки.
type GCConfig struct {
	TTLHours    int `yaml:"ttl_hours" json:"ttl_hours" validate:"gte=0"`
	IntervalMin int `yaml:"interval_min" json:"interval_min" validate:"gte=0"`
}

// RateLimitConfig — лимит запросов на весь сервис; RPS=0 отключает лимит.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" json:"rps" validate:"gte=0"`
	Burst int     `yaml:"burst" json:"burst" validate:"gte=0"`
}

const (
	defaultListenAddr      = ":8000"
	defaultStorageRoot     = "./storage"
	defaultFrontendDir     = "./frontend"
	defaultShutdownTimeout = 15
	defaultGCTTLHours      = 24
	defaultGCIntervalMin   = 30
)

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствие файла не считается ошибкой: сервис стартует на дефолтах и ENV.
func Load() (*Config, error) {
	path := getenv("CONFIG_PATH", "./config.yaml")

	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := applyEnv(&c); err != nil {
		return nil, err
	}
	ApplyDefaults(&c)

	if err := Validate(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyEnv — ENV override поверх значений из файла.
func applyEnv(c *Config) error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("STORAGE_ROOT"); v != "" {
		c.StorageRoot = v
	}
	if v := os.Getenv("FRONTEND_DIR"); v != "" {
		c.FrontendDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STRIP_ROOT_NAME"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STRIP_ROOT_NAME: %w", err)
		}
		c.StripRootName = &b
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"GC_TTL_HOURS", &c.GC.TTLHours},
		{"GC_INTERVAL_MIN", &c.GC.IntervalMin},
		{"RATE_LIMIT_BURST", &c.RateLimit.Burst},
		{"SHUTDOWN_TIMEOUT_SEC", &c.ShutdownTimeoutSec},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_MB: %w", err)
		}
		c.MaxUploadMB = n
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = f
	}

	return nil
}

// ApplyDefaults заполняет незаданные поля значениями по умолчанию.
func ApplyDefaults(c *Config) {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.StorageRoot == "" {
		c.StorageRoot = defaultStorageRoot
	}
	if c.FrontendDir == "" {
		c.FrontendDir = defaultFrontendDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
	if c.ShutdownTimeoutSec == 0 {
		c.ShutdownTimeoutSec = defaultShutdownTimeout
	}
	if c.StripRootName == nil {
		strip := true
		c.StripRootName = &strip
	}
	if c.GC.TTLHours == 0 {
		c.GC.TTLHours = defaultGCTTLHours
	}
	if c.GC.IntervalMin == 0 {
		c.GC.IntervalMin = defaultGCIntervalMin
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(c.RateLimit.RPS) + 1
	}
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}

func (c *Config) GCTTL() time.Duration {
	return time.Duration(c.GC.TTLHours) * time.Hour
}

func (c *Config) GCInterval() time.Duration {
	return time.Duration(c.GC.IntervalMin) * time.Minute
}

// MaxUploadBytes возвращает лимит тела загрузки; 0 — без ограничения.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// StripsRootName сообщает, срезать ли лишний ведущий сегмент с именем корня.
func (c *Config) StripsRootName() bool {
	return c.StripRootName == nil || *c.StripRootName
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
