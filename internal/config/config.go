// Package config loads service settings from .env, configs/config.yml and
// LOGSHEET_* environment variables, and re-reads the file when it changes.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"driver_logsheet/internal/logsheet"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LOGSHEET"

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type DemoConfig struct {
	Seed bool `mapstructure:"seed"`
}

type WSConfig struct {
	DefaultInterval time.Duration `mapstructure:"default_interval"`
}

// Config holds entire config
type Config struct {
	Port     string          `mapstructure:"port"`
	LogLevel string          `mapstructure:"log_level"`
	DB       DBConfig        `mapstructure:"db"`
	Auth     AuthConfig      `mapstructure:"auth"`
	Demo     DemoConfig      `mapstructure:"demo"`
	Layout   logsheet.Layout `mapstructure:"layout"`
	WS       WSConfig        `mapstructure:"ws"`
}

// Validate checks the values the service cannot start without.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if c.DB.Path == "" {
		return errors.New("db.path must be set")
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key must be set")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.WS.DefaultInterval <= 0 {
		return fmt.Errorf("ws.default_interval must be positive, got %s", c.WS.DefaultInterval)
	}
	return c.Layout.Validate()
}

func setDefaults(v *viper.Viper) {
	l := logsheet.DefaultLayout()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "logsheet.db")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("demo.seed", true)
	v.SetDefault("ws.default_interval", 5*time.Second)
	v.SetDefault("layout.header_height", l.HeaderHeight)
	v.SetDefault("layout.row_height", l.RowHeight)
	v.SetDefault("layout.label_width", l.LabelWidth)
	v.SetDefault("layout.hour_width", l.HourWidth)
	v.SetDefault("layout.padding", l.Padding)
	v.SetDefault("layout.adjacency_tolerance", l.AdjacencyTolerance)
	v.SetDefault("layout.totals_tolerance", l.TotalsTolerance)
}

// Loader owns a viper instance and the last config decoded from it.
type Loader struct {
	v *viper.Viper

	mu      sync.RWMutex
	current Config
}

// Load reads .env (if present), then config.yml from dir (if present), then the
// environment. A missing config file is not an error; defaults apply.
func Load(dir string) (*Loader, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

func (l *Loader) decode() (Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Config returns the current configuration in a thread-safe way.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// File is the config file in use, or "" when running on defaults.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch re-reads the config file on change. A valid new config replaces the current
// one and is passed to onChange; an invalid one is passed to onError and ignored.
// Watch does nothing when no config file was found.
func (l *Loader) Watch(onChange func(Config), onError func(error)) {
	if l.File() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := l.decode()
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		l.mu.Lock()
		l.current = cfg
		l.mu.Unlock()
		if onChange != nil {
			onChange(cfg)
		}
	})
	l.v.WatchConfig()
}
