package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Prefs     PrefsConfig     `mapstructure:"prefs"`
	Cache     CacheConfig     `mapstructure:"cache"`
	UI        UIConfig        `mapstructure:"ui"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// APIConfig holds OpenWeatherMap settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	KeyEnv  string        `mapstructure:"key_env"`
	Key     string        `mapstructure:"key"`
	Units   string        `mapstructure:"units"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type PrefsConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig bounds the weather cache. A zero MaxAge disables pruning.
type CacheConfig struct {
	MaxAge time.Duration `mapstructure:"max_age"`
}

type UIConfig struct {
	Language string `mapstructure:"language"`
}

type LogConfig struct {
	Path string `mapstructure:"path"`
}

// TelemetryConfig enables OTLP/HTTP tracing when Endpoint is set.
type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// KeySource looks up a stored API key by name.
type KeySource interface {
	Fetch(name string) (string, error)
}

// SecretName is the name the API key is stored under.
const SecretName = "openweather"

// Load reads configuration from file and env. Env var overrides use prefix JASKWEATHER_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = filepath.Join(home, ".config")
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = filepath.Join(home, ".cache")
	}

	// default values
	v.SetDefault("api.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("api.key_env", "OPENWEATHER_API_KEY")
	v.SetDefault("api.key", "")
	v.SetDefault("api.units", "metric")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "jaskweather", "jaskweather.db"))
	v.SetDefault("prefs.path", filepath.Join(cfgDir, "jaskweather", "prefs.json"))
	v.SetDefault("cache.max_age", "168h")
	v.SetDefault("ui.language", "en")
	v.SetDefault("log.path", filepath.Join(cacheDir, "jaskweather", "debug.log"))
	v.SetDefault("telemetry.endpoint", "")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("JASKWEATHER_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "jaskweather"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKWEATHER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var missing viper.ConfigFileNotFoundError
		if !errors.As(err, &missing) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Path returns the file Save writes to.
func Path() string {
	if p := os.Getenv("JASKWEATHER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "jaskweather", "config.toml")
}

// Save writes cfg to Path, creating the directory if needed. The API key is
// written only when it is already part of cfg; prefer the secrets store.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.key_env", cfg.API.KeyEnv)
	v.Set("api.key", cfg.API.Key)
	v.Set("api.units", cfg.API.Units)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("prefs.path", cfg.Prefs.Path)
	v.Set("cache.max_age", cfg.Cache.MaxAge.String())
	v.Set("ui.language", cfg.UI.Language)
	v.Set("log.path", cfg.Log.Path)
	v.Set("telemetry.endpoint", cfg.Telemetry.Endpoint)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveKey picks the API key: the env var named by KeyEnv, then the
// secrets store, then the config value.
func (a APIConfig) ResolveKey(stored KeySource) string {
	if a.KeyEnv != "" {
		if k := strings.TrimSpace(os.Getenv(a.KeyEnv)); k != "" {
			return k
		}
	}
	if stored != nil {
		if k, err := stored.Fetch(SecretName); err == nil && k != "" {
			return k
		}
	}
	return strings.TrimSpace(a.Key)
}
